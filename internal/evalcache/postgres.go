package evalcache

import (
	"context"
	"fmt"
)

// EntryDB is the slice of the database layer the Postgres backend needs.
// *db.DB satisfies it.
type EntryDB interface {
	GetCacheEntry(ctx context.Context, key string) ([]byte, error)
	UpsertCacheEntry(ctx context.Context, key string, value []byte) error
}

// Postgres is a Store backed by the cache_entries table. Entries are durable
// and never expire.
type Postgres struct {
	db EntryDB
}

// NewPostgres creates a database-backed cache store.
func NewPostgres(db EntryDB) *Postgres {
	return &Postgres{db: db}
}

// Get returns the cached value for key, if present.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := p.db.GetCacheEntry(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("evalcache: postgres get %q: %w", key, err)
	}
	if value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous entry.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	if err := p.db.UpsertCacheEntry(ctx, key, value); err != nil {
		return fmt.Errorf("evalcache: postgres put %q: %w", key, err)
	}
	return nil
}
