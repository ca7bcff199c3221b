package file_store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/Luismorlan/blogmux/utils"
	"github.com/pkg/errors"
)

const (
	TmpFileDirPrefix = "_tmp_file_store_"
)

// LocalFileStore keeps uploads in a local directory, used in development and
// in tests. Keys resolve to urls under /media/ which cmd/server exposes as a
// static route.
type LocalFileStore struct {
	bucket     string
	folderName string
}

func NewLocalFileStore(bucket string) (*LocalFileStore, error) {
	folderName, err := CreateFolder(bucket)
	if err != nil {
		return nil, err
	}

	return &LocalFileStore{
		bucket:     bucket,
		folderName: folderName,
	}, nil
}

func CreateFolder(bucket string) (string, error) {
	folderName := TmpFileDirPrefix + bucket
	err := os.MkdirAll(folderName, os.ModePerm)
	if err != nil && os.IsExist(err) {
		return folderName, nil
	}
	return folderName, err
}

func DeleteFolder(folderName string) error {
	return os.RemoveAll(folderName)
}

// FolderName returns the directory uploads live in, so the caller can serve
// it statically.
func (s *LocalFileStore) FolderName() string {
	return s.folderName
}

func (s *LocalFileStore) CleanUp() {
	DeleteFolder(s.folderName)
}

// Store writes the payload to disk under a content-derived key. Re-uploading
// identical content is a no-op returning the existing key.
func (s *LocalFileStore) Store(r io.Reader, fileName string) (key string, err error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", errors.Wrap(err, "fail to read upload payload")
	}

	key, err = GenerateKeyFromContent(buf.Bytes(), fileName)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.folderName, key)
	if _, err := os.Stat(path); err == nil {
		return key, nil
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", errors.Wrap(err, "fail to write upload to local store")
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return "/media/" + key
}

// GenerateKeyFromContent derives a storage key from the payload's md5 hash
// plus the original file extension.
func GenerateKeyFromContent(content []byte, fileName string) (string, error) {
	key, err := utils.TextToMd5Hash(string(content))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("generate empty file store key, invalid")
	}
	return key + utils.GetExtNameWithDot(fileName), nil
}
