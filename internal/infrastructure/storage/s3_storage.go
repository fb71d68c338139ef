package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/holycity/portal/internal/domain/attendance"
	infraconfig "github.com/holycity/portal/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ attendance.EvidenceStore = (*S3EvidenceStore)(nil)

// S3EvidenceStore keeps attendance photos in an S3-compatible bucket.
// It works with AWS S3, MinIO, and other path-style compatible backends.
type S3EvidenceStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	logger    *zap.Logger
}

// S3EvidenceStoreOption is a functional option for configuring S3EvidenceStore
type S3EvidenceStoreOption func(*S3EvidenceStore)

// WithLogger sets a custom logger for S3EvidenceStore
func WithLogger(logger *zap.Logger) S3EvidenceStoreOption {
	return func(s *S3EvidenceStore) {
		s.logger = logger
	}
}

// WithKeyPrefix namespaces all evidence objects under the given prefix
func WithKeyPrefix(prefix string) S3EvidenceStoreOption {
	return func(s *S3EvidenceStore) {
		s.keyPrefix = strings.TrimSuffix(prefix, "/") + "/"
	}
}

// NewS3EvidenceStore creates a new S3EvidenceStore from configuration.
func NewS3EvidenceStore(cfg *infraconfig.S3Config, opts ...S3EvidenceStoreOption) (*S3EvidenceStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
			}
		}
	})

	store := &S3EvidenceStore{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: "attendance/",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Store uploads the photo content under its derived name.
func (s *S3EvidenceStore) Store(ctx context.Context, name string, content io.Reader, size int64) error {
	if name == "" {
		return errors.New("evidence name is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyPrefix + name),
		Body:   content,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload evidence photo: %w", err)
	}

	s.logger.Debug("Uploaded evidence photo",
		zap.String("bucket", s.bucket),
		zap.String("key", s.keyPrefix+name))
	return nil
}

// Remove deletes a stored photo. S3 DeleteObject succeeds for missing keys,
// which keeps compensating cleanup idempotent.
func (s *S3EvidenceStore) Remove(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("evidence name is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyPrefix + name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete evidence photo: %w", err)
	}
	return nil
}
