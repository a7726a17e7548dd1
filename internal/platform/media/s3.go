package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"stayhub/internal/common"
	"stayhub/internal/platform/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the external media host. Uploads and deletes are synchronous:
// callers only mutate local state after the remote call succeeded.
type Client interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// S3Client talks to an S3-compatible object store (MinIO in development).
type S3Client struct {
	s3      *s3.Client
	bucket  string
	baseURL string
	timeout time.Duration
}

func NewS3Client(ctx context.Context) (*S3Client, error) {
	cfg := config.AppConfig
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.MediaRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.MediaAccessKey,
			cfg.MediaSecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("media: loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
		o.UsePathStyle = true // MinIO does not support virtual-hosted buckets
	})

	return &S3Client{
		s3:      client,
		bucket:  cfg.MediaBucket,
		baseURL: cfg.MediaBaseURL,
		timeout: time.Duration(cfg.MediaTimeoutS) * time.Second,
	}, nil
}

// Upload stores data under key and returns the public retrieval URL.
func (c *S3Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w: %v", key, common.ErrUpstreamFailure, err)
	}
	return c.baseURL + "/" + key, nil
}

func (c *S3Client) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w: %v", key, common.ErrUpstreamFailure, err)
	}
	return nil
}
