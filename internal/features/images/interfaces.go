package images

import (
	"context"
	"io"

	images_models "workspaces-backend/internal/features/images/models"
)

// ImageHost stores workspace images outside the process. Every Upload creates
// a new asset; Delete of an absent asset succeeds.
type ImageHost interface {
	Upload(
		ctx context.Context,
		file io.Reader,
		fileSize int64,
		fileName string,
	) (*images_models.UploadResult, error)

	Delete(ctx context.Context, publicID string) error
}
