package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/checkmate-app/backend/config"
	"github.com/checkmate-app/backend/errs"
)

// FileObject describes one stored project file.
type FileObject struct {
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Storage holds project files in S3 under a per-project prefix
// (projects/{projectID}/). Uploads overwrite by default; there is no
// versioning and no access control beyond the bucket's own policy.
type Storage struct {
	client *s3.Client
	bucket string
	region string
	logger zerolog.Logger
}

func NewStorage(ctx context.Context) (*Storage, error) {
	cfg := config.New()
	bucket := config.GetString(cfg, "S3_BUCKET", "checkmate-project-files")
	region := config.GetString(cfg, "S3_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		region: region,
		logger: log.With().Str("serviceName", "storage").Logger(),
	}, nil
}

func (s *Storage) prefix(projectID uuid.UUID) string {
	return fmt.Sprintf("projects/%s/", projectID)
}

func (s *Storage) key(projectID uuid.UUID, fileName string) string {
	return s.prefix(projectID) + fileName
}

// List returns the files stored under the project's prefix.
func (s *Storage) List(ctx context.Context, projectID uuid.UUID) ([]FileObject, error) {
	prefix := s.prefix(projectID)
	output, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("prefix", prefix).Msg("Failed to list project files")
		return nil, errs.NewStorageError("list files", err)
	}

	files := make([]FileObject, 0, len(output.Contents))
	for _, object := range output.Contents {
		key := aws.ToString(object.Key)
		name := strings.TrimPrefix(key, prefix)
		if name == "" {
			continue
		}
		file := FileObject{Name: name, Key: key}
		if object.Size != nil {
			file.Size = *object.Size
		}
		if object.LastModified != nil {
			file.LastModified = *object.LastModified
		}
		files = append(files, file)
	}
	return files, nil
}

// Upload stores a file under the project's prefix, overwriting any
// existing object with the same name.
func (s *Storage) Upload(ctx context.Context, projectID uuid.UUID, fileName string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(projectID, fileName)),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("fileName", fileName).Msg("Failed to upload project file")
		return errs.NewStorageError("upload file", err)
	}
	return nil
}

// Delete removes a single file from the project's prefix.
func (s *Storage) Delete(ctx context.Context, projectID uuid.UUID, fileName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(projectID, fileName)),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("fileName", fileName).Msg("Failed to delete project file")
		return errs.NewStorageError("delete file", err)
	}
	return nil
}

// PublicURL derives the object's public URL from bucket and region.
func (s *Storage) PublicURL(projectID uuid.UUID, fileName string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.key(projectID, fileName))
}
