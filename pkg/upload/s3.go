// Package upload pushes rendered images to S3-compatible storage.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/golang/glog"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 10 * time.Second

// Config holds S3 connection settings, read from the environment
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// ConfigFromEnv reads S3 settings from S3_* environment variables
func ConfigFromEnv() Config {
	return Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
	}
}

// Uploader wraps an S3 client bound to one bucket
type Uploader struct {
	client *s3.S3
	bucket string
}

// NewUploader creates an uploader from the given config
func NewUploader(cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured (set S3_BUCKET)")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("while creating S3 session: %w", err)
	}

	return &Uploader{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Upload stores data under key with the given content type
func (u *Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	glog.Infof("Uploaded %s to %s (%d bytes)", key, u.bucket, size)
	return nil
}
