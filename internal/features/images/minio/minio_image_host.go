package minio_image_host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	images_models "workspaces-backend/internal/features/images/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	uploadTries    = 3
	uploadRetryGap = 500 * time.Millisecond
)

type MinioImageHost struct {
	client  *minio.Client
	bucket  string
	maxSize int64
	logger  *slog.Logger
}

// NewMinioImageHost connects to the endpoint and creates the bucket when it
// does not exist yet.
func NewMinioImageHost(
	ctx context.Context,
	endpoint string,
	accessKey string,
	secretKey string,
	bucket string,
	useSSL bool,
	maxSize int64,
	logger *slog.Logger,
) (*MinioImageHost, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created minio bucket for images", "bucket", bucket)
	}

	return &MinioImageHost{
		client:  client,
		bucket:  bucket,
		maxSize: maxSize,
		logger:  logger,
	}, nil
}

func (h *MinioImageHost) Upload(
	ctx context.Context,
	file io.Reader,
	fileSize int64,
	fileName string,
) (*images_models.UploadResult, error) {
	if err := images_models.ValidateImage(fileSize, fileName, h.maxSize); err != nil {
		return nil, err
	}

	publicID := images_models.NewPublicID(fileName)

	// the reader can only be consumed once, retry only when it is seekable
	seeker, canRetry := file.(io.Seeker)

	var err error
	for attempt := 1; attempt <= uploadTries; attempt++ {
		_, err = h.client.PutObject(
			ctx,
			h.bucket,
			publicID,
			file,
			fileSize,
			minio.PutObjectOptions{ContentType: images_models.GetContentType(fileName)},
		)
		if err == nil || !canRetry || ctx.Err() != nil {
			break
		}

		h.logger.Warn(
			"Failed to upload image to minio, retrying",
			"publicId", publicID,
			"attempt", attempt,
			"error", err,
		)

		if _, seekErr := seeker.Seek(0, io.SeekStart); seekErr != nil {
			break
		}
		time.Sleep(uploadRetryGap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upload image to minio: %w", err)
	}

	h.logger.Info("Uploaded image to minio", "publicId", publicID, "bucket", h.bucket)

	return &images_models.UploadResult{
		SecureURL: buildObjectURL(h.client.EndpointURL(), h.bucket, publicID),
		PublicID:  publicID,
	}, nil
}

func (h *MinioImageHost) Delete(ctx context.Context, publicID string) error {
	err := h.client.RemoveObject(ctx, h.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image from minio: %w", err)
	}

	return nil
}

func buildObjectURL(endpoint *url.URL, bucket string, publicID string) string {
	return endpoint.JoinPath(bucket, publicID).String()
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchObject"
}
