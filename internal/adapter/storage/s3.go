package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// S3 stores objects in an S3-compatible bucket (AWS, MinIO, SeaweedFS).
type S3 struct {
	api    *s3.Client
	bucket string
}

// NewS3 builds a client from static credentials when given, otherwise from
// the default AWS credential chain.
func NewS3(ctx context.Context, cfg config.StorageConfig) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.S3Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3ForcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3{api: client, bucket: cfg.S3Bucket}, nil
}

// Ping checks that the bucket exists and the credentials can reach it.
func (s *S3) Ping(ctx context.Context) error {
	if _, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &s.bucket}); err != nil {
		return fmt.Errorf("storage: head bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put uploads r under key.
func (s *S3) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	in := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &k,
		Body:   r,
	}
	if size > 0 {
		in.ContentLength = &size
	}
	if contentType != "" {
		in.ContentType = &contentType
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("storage: s3 put %s: %w", k, err)
	}
	return nil
}

// Open streams the object body. The caller must close it.
func (s *S3) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &k})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("storage object %s: %w", k, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: s3 get %s: %w", k, err)
	}
	return out.Body, nil
}

// Delete removes the object. S3 treats a missing key as success.
func (s *S3) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &k}); err != nil {
		return fmt.Errorf("storage: s3 delete %s: %w", k, err)
	}
	return nil
}
