package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCandidateDir(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0755))
	for _, file := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte("x"), 0644))
	}
}

func TestDiscoverCandidates(t *testing.T) {
	root := t.TempDir()
	writeCandidateDir(t, root, "alice", "answers.json", "resume.txt")
	writeCandidateDir(t, root, "bob", "answers.json")
	writeCandidateDir(t, root, "carol", "resume.txt") // no answers.json, skipped
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0644))

	candidates, err := discoverCandidates(root)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "alice", candidates[0].name)
	assert.Equal(t, filepath.Join(root, "alice", "answers.json"), candidates[0].answersFile)
	assert.Equal(t, filepath.Join(root, "alice", "resume.txt"), candidates[0].resumeFile)

	assert.Equal(t, "bob", candidates[1].name)
	assert.Empty(t, candidates[1].resumeFile)
}

func TestDiscoverCandidates_ResumeProbeOrder(t *testing.T) {
	root := t.TempDir()
	writeCandidateDir(t, root, "dana", "answers.json", "resume.md", "resume.html")

	candidates, err := discoverCandidates(root)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, filepath.Join(root, "dana", "resume.md"), candidates[0].resumeFile)
}

func TestDiscoverCandidates_MissingRoot(t *testing.T) {
	_, err := discoverCandidates(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read candidate directory")
}
