// Package storage stores media objects in Supabase Storage through its
// S3-compatible endpoint.
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
)

const (
	DefaultBucket = "portfolio-media"
	defaultRegion = "us-east-1"
	cacheControl  = "max-age=3600"
)

type Config struct {
	// Endpoint is the S3 endpoint, {SUPABASE_URL}/storage/v1/s3 for Supabase.
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL is the project URL public object links are derived from.
	PublicBaseURL string
}

// Bucket is one storage bucket.
type Bucket struct {
	client     *s3.Client
	name       string
	publicBase string
}

func NewBucket(ctx context.Context, cfg Config) (*Bucket, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storage endpoint is required")
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &Bucket{
		client:     client,
		name:       cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (b *Bucket) Name() string {
	return b.name
}

// Upload writes body under path, replacing nothing: callers pick unique paths.
func (b *Bucket) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(b.name),
		Key:          aws.String(path),
		Body:         body,
		CacheControl: aws.String(cacheControl),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", path, err)
	}
	return nil
}

func (b *Bucket) Delete(ctx context.Context, path string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

// PublicURL returns the public link of path in this bucket.
func (b *Bucket) PublicURL(path string) string {
	return PublicURL(b.publicBase, b.name, path)
}

// ObjectPath recovers the object path from a public link of this bucket. It
// returns false for links to anything else.
func (b *Bucket) ObjectPath(publicURL string) (string, bool) {
	prefix := PublicURL(b.publicBase, b.name, "")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	escaped := strings.TrimPrefix(publicURL, prefix)
	path, err := url.PathUnescape(escaped)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// PublicURL builds {base}/storage/v1/object/public/{bucket}/{path}.
func PublicURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(base, "/"), bucket, strings.Join(segments, "/"))
}
