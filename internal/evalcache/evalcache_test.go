package evalcache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the Store behavior every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	value, ok, err := store.Get(ctx, "eval:absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)

	key := EvaluationKey("software engineer", "question", "answer")
	require.NoError(t, store.Put(ctx, key, []byte(`{"overall_score":75}`)))

	value, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"overall_score":75}`, string(value))

	require.NoError(t, store.Put(ctx, key, []byte(`{"overall_score":80}`)))
	value, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"overall_score":80}`, string(value))
}

func TestMemory_Contract(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestMemory_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	original := []byte(`{"score":1}`)
	require.NoError(t, m.Put(ctx, "eval:key", original))
	original[0] = 'X'

	got, ok, err := m.Get(ctx, "eval:key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"score":1}`), got)

	got[0] = 'Y'
	again, _, err := m.Get(ctx, "eval:key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"score":1}`), again)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := EvaluationKey("role", "question", string(rune('a'+n)))
			for j := 0; j < 50; j++ {
				assert.NoError(t, m.Put(ctx, key, []byte(`{"n":1}`)))
				_, _, err := m.Get(ctx, key)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, m.Len())
}

type fakeEntryDB struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	putErr  error
}

func newFakeEntryDB() *fakeEntryDB {
	return &fakeEntryDB{entries: make(map[string][]byte)}
}

func (f *fakeEntryDB) GetCacheEntry(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[key], nil
}

func (f *fakeEntryDB) UpsertCacheEntry(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[key] = value
	return nil
}

func TestPostgres_Contract(t *testing.T) {
	runStoreContract(t, NewPostgres(newFakeEntryDB()))
}

func TestPostgres_WrapsBackendErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeEntryDB()
	fake.getErr = errors.New("connection refused")
	fake.putErr = errors.New("connection refused")
	store := NewPostgres(fake)

	_, ok, err := store.Get(ctx, "eval:key")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evalcache: postgres get")

	err = store.Put(ctx, "eval:key", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evalcache: postgres put")
}
