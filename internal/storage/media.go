// Package storage holds avatar images in an S3-compatible bucket.
// Objects are addressed by derived keys; the bucket serves them publicly.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"spotfolio/internal/config"
	"spotfolio/internal/middleware"
	"spotfolio/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockery --name MediaStore --output ./mocks --outpkg mocks --case=underscore
type MediaStore interface {
	// Upload stores body under key, replacing any existing object.
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	// PublicURL returns the browser-facing URL for key. It does not check existence.
	PublicURL(key string) string
	// Delete removes the object under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// S3Store is the bucket-backed MediaStore.
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3Store builds the store, switching credentials the same way the rest
// of our AWS wiring does: explicit keys or the ambient IAM role.
func NewS3Store(cfg *config.Config) MediaStore {
	var awsCfgOpts []func(*awsconfig.LoadOptions) error
	awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.Media.Region))

	switch cfg.Media.AuthType {
	case "static_credentials":
		slog.Info("Configuring media store with static credentials.")
		if cfg.Media.AccessKeyID == "" || cfg.Media.SecretAccessKey == "" {
			slog.Error("media.auth_type is 'static_credentials' but access_key_id or secret_access_key is missing")
			panic("missing static credentials for media store")
		}
		creds := credentials.NewStaticCredentialsProvider(
			cfg.Media.AccessKeyID,
			cfg.Media.SecretAccessKey,
			"",
		)
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))

	case "iam_role":
		slog.Info("Configuring media store with IAM Role credentials.")

	default:
		slog.Warn("Unknown media auth_type, defaulting to IAM Role.", "type", cfg.Media.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsCfgOpts...)
	if err != nil {
		slog.Error("Failed to load AWS config for media store", "error", err)
		panic(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        cfg.Media.Bucket,
		region:        cfg.Media.Region,
		publicBaseURL: cfg.Media.PublicBaseURL,
	}
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	logger := middleware.GetLogger(ctx)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.Error("Failed to upload media object", "error", err, "key", key)
		return model.NewAppError("MEDIA_UPLOAD_FAILED", "Could not upload the image.", "", model.ErrInternalServer)
	}

	logger.Info("Media object uploaded", "key", key)
	return nil
}

func (s *S3Store) PublicURL(key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	logger := middleware.GetLogger(ctx)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Warn("Failed to delete media object", "error", err, "key", key)
		return model.NewAppError("MEDIA_DELETE_FAILED", "Could not delete the image.", "", model.ErrInternalServer)
	}
	return nil
}
