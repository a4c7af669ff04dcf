package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureStoreLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie_1.json"), []byte(`{"id":1}`), 0o644))

	store := NewFixtureStore(dir)

	data, ok := store.Load("movie_1.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(data))

	// 删除底层文件后缓存仍然命中
	require.NoError(t, os.Remove(filepath.Join(dir, "movie_1.json")))
	data, ok = store.Load("movie_1.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(data))
}

func TestFixtureStoreMiss(t *testing.T) {
	store := NewFixtureStore(t.TempDir())

	_, ok := store.Load("missing.json")
	assert.False(t, ok)
}

func TestFixtureStoreRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	store := NewFixtureStore(dir)

	_, ok := store.Load("broken.json")
	assert.False(t, ok)
}
