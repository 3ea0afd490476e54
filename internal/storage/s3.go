package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	appconfig "deccan-store/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Uploader stores product images and returns their public URLs.
type Uploader interface {
	// Upload stores one file and returns the URL it is served from.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// s3Uploader implements Uploader against AWS S3.
type s3Uploader struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Uploader creates a new S3-backed image uploader.
func NewS3Uploader(ctx context.Context, cfg appconfig.S3Config, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	// Load AWS configuration
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 uploader initialised")

	return &s3Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

// Upload stores one file under a timestamped key and returns the public
// object URL, matching where the storefront expects product images to live.
func (u *s3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s%d-%s", u.prefix, time.Now().UnixMilli(), filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to upload object to S3")
		return "", fmt.Errorf("failed to upload object to S3 (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)

	u.logger.Debug().Str("url", url).Msg("image uploaded")

	return url, nil
}
