package file_store

import "io"

// UploadFileStore persists user-uploaded files (post images) and hands back a
// stable key that the models store and the templates turn into a url.
type UploadFileStore interface {
	// Store reads the whole payload and persists it, returning the storage
	// key. Storing the same payload twice yields the same key.
	Store(r io.Reader, fileName string) (key string, err error)
	// GetUrlFromKey resolves a storage key to a url the browser can fetch.
	GetUrlFromKey(key string) string
	CleanUp()
}
