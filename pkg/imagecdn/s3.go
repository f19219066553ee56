package imagecdn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Config describes the S3-compatible bucket behind the CDN.
type Config struct {
	Bucket      string `env:"CDN_BUCKET,required"`                 // Bucket receiving generated images.
	Region      string `env:"CDN_REGION" envDefault:"us-east-1"`   // Region of the bucket.
	AccessKeyID string `env:"CDN_ACCESS_KEY_ID"`                   // Static credentials; empty falls back to the default chain.
	SecretKey   string `env:"CDN_SECRET_KEY"`
	Endpoint    string `env:"CDN_ENDPOINT"`                        // Optional custom endpoint for S3-compatible services.
	BaseURL     string `env:"CDN_BASE_URL"`                        // Public URL base the CDN serves the bucket from.
	PathStyle   bool   `env:"CDN_FORCE_PATH_STYLE" envDefault:"false"` // Path-style addressing for MinIO-like services.
	KeyPrefix   string `env:"CDN_KEY_PREFIX" envDefault:"shoots"`  // Prefix for all generated-image object keys.
}

// S3Client is the slice of the S3 API the uploader needs; narrowed for mocks.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader implements Uploader on an S3-compatible bucket fronted by the
// CDN. Safe for concurrent use.
type S3Uploader struct {
	client    S3Client
	bucket    string
	baseURL   string
	keyPrefix string
}

// Option configures an S3Uploader.
type Option func(*S3Uploader)

// WithClient injects a pre-configured S3 client, used by tests.
func WithClient(client S3Client) Option {
	return func(u *S3Uploader) {
		u.client = client
	}
}

// NewS3Uploader creates an uploader for the configured bucket.
func NewS3Uploader(ctx context.Context, cfg Config, opts ...Option) (*S3Uploader, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	u := &S3Uploader{
		bucket:    cfg.Bucket,
		baseURL:   publicBaseURL(cfg),
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.client == nil {
		awsOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}

		u.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return u, nil
}

// Upload stores the image and returns its public CDN URL.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if u.keyPrefix != "" {
		key = u.keyPrefix + "/" + strings.TrimPrefix(key, "/")
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classifyS3Error(err)
	}

	return u.baseURL + key, nil
}

// publicBaseURL derives the serving URL base: explicit CDN base, custom
// endpoint, or the standard AWS virtual-hosted form.
func publicBaseURL(cfg Config) string {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}

// classifyS3Error converts S3 API errors into uploader errors.
func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return errors.Join(ErrAccessDenied, err)
		case "NoSuchBucket":
			return errors.Join(ErrBucketNotFound, err)
		}
	}
	return errors.Join(ErrUploadFailed, err)
}
