package file_store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStoreRoundTrip(t *testing.T) {
	store, err := NewLocalFileStore("roundtrip")
	require.NoError(t, err)
	defer store.CleanUp()

	payload := []byte("fake image bytes")
	key, err := store.Store(bytes.NewReader(payload), "picture.png")
	require.NoError(t, err)
	assert.Contains(t, key, ".png")

	stored, err := os.ReadFile(filepath.Join(store.FolderName(), key))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	assert.Equal(t, "/media/"+key, store.GetUrlFromKey(key))

	// Same content maps to the same key.
	again, err := store.Store(bytes.NewReader(payload), "picture.png")
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestGenerateKeyFromContent(t *testing.T) {
	a, err := GenerateKeyFromContent([]byte("same"), "a.jpg")
	require.NoError(t, err)
	b, err := GenerateKeyFromContent([]byte("same"), "b.jpg")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateKeyFromContent([]byte("different"), "a.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	noExt, err := GenerateKeyFromContent([]byte("same"), "raw")
	require.NoError(t, err)
	assert.NotContains(t, noExt, ".")
}
