package mediastore

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const presignExpiry = 15 * time.Minute

type S3MediaStore struct {
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3MediaStore() (*S3MediaStore, error) {
	// AWS client session, region from the environment (AWS_REGION is always
	// set on Lambda).
	sess, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, errors.Wrap(err, "fail to create aws session")
	}

	return &S3MediaStore{
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(sess),
	}, nil
}

// SaveImage uploads under a fresh uuid key so concurrent uploads of the same
// file name never collide. The original extension is kept, lowercased.
func (s *S3MediaStore) SaveImage(bucket, prefix, filename string, body io.Reader) (string, error) {
	key := prefix + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", errors.Wrap(err, "fail to upload image")
	}
	return key, nil
}

// GetImageURL issues a presigned GET for the stored key. The bucket stays
// private, only the signed URL is handed to clients.
func (s *S3MediaStore) GetImageURL(bucket, key string) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(presignExpiry)
	if err != nil {
		return "", errors.Wrap(err, "fail to presign image url")
	}
	return url, nil
}
