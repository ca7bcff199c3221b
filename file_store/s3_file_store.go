package file_store

import (
	"bytes"
	"io"
	"os"

	Logger "github.com/Luismorlan/blogmux/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3FileStore uploads post images into an S3 bucket fronted by a CDN, used in
// production. Bucket and CDN prefix come from the environment so dev and prod
// stacks stay separate.
type S3FileStore struct {
	bucket    string
	cdnPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

func NewS3FileStore(bucket string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		cdnPrefix: os.Getenv("IMAGE_CDN_PREFIX"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

// Store uploads the payload under a content-derived key. If the key already
// exists the upload is skipped, identical content maps to identical keys.
func (s *S3FileStore) Store(r io.Reader, fileName string) (key string, err error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}

	key, err = GenerateKeyFromContent(buf.Bytes(), fileName)
	if err != nil {
		return "", err
	}

	if !s.IsKeyExisted(key) {
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(buf.Bytes()),
		})
		if err != nil {
			Logger.Log.Warn("fail to upload image to s3, key:", key, "err:", err)
			return "", err
		}
	}
	return key, nil
}

func (s *S3FileStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.cdnPrefix + key
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
