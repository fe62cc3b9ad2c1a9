package store

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader copies run artifacts to s3://Bucket/Prefix/<base name>.
type Uploader struct {
	Client S3API
	Bucket string
	Prefix string
}

// Key is the object key used for a local file.
func (u Uploader) Key(file string) string {
	base := filepath.Base(file)
	prefix := strings.Trim(u.Prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

// UploadFiles puts each file and returns the keys written, stopping at the
// first failure.
func (u Uploader) UploadFiles(ctx context.Context, files ...string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, f := range files {
		body, err := os.ReadFile(f)
		if err != nil {
			return keys, errors.Wrapf(err, "read %s", f)
		}
		key := u.Key(f)
		if _, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentType(f)),
		}); err != nil {
			return keys, errors.Wrapf(err, "put s3://%s/%s", u.Bucket, key)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return "image/png"
	case ".csv":
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}
