package storage

import (
	"context"
	"fmt"

	"storefront-be/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client builds an S3 client from the app config. Static keys override
// the default credential chain, and a custom endpoint switches to path-style
// addressing for S3-compatible services.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// PublicBase is the URL prefix uploaded objects are served from.
func PublicBase(cfg *config.Config) string {
	switch {
	case cfg.S3PublicURL != "":
		return cfg.S3PublicURL
	case cfg.S3Endpoint != "":
		return cfg.S3Endpoint
	default:
		return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.S3Region)
	}
}
