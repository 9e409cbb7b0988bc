package local_image_host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	images_models "workspaces-backend/internal/features/images/models"
	files_utils "workspaces-backend/internal/util/files"

	"github.com/google/uuid"
)

// Images are small compared to the upload ceiling, 1MB is enough to keep the
// copy loop responsive to cancellation.
const localChunkSize = 1024 * 1024

var errInvalidPublicID = errors.New("invalid public id")

// LocalImageHost keeps images under imageFolder and writes them through
// tempFolder first so a partially written file is never served.
type LocalImageHost struct {
	imageFolder   string
	tempFolder    string
	publicBaseURL string
	maxSize       int64
	logger        *slog.Logger
}

func NewLocalImageHost(
	imageFolder string,
	tempFolder string,
	publicBaseURL string,
	maxSize int64,
	logger *slog.Logger,
) *LocalImageHost {
	return &LocalImageHost{
		imageFolder:   imageFolder,
		tempFolder:    tempFolder,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
		logger:        logger,
	}
}

func (h *LocalImageHost) Upload(
	ctx context.Context,
	file io.Reader,
	fileSize int64,
	fileName string,
) (*images_models.UploadResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := images_models.ValidateImage(fileSize, fileName, h.maxSize); err != nil {
		return nil, err
	}

	publicID := images_models.NewPublicID(fileName)
	finalPath := h.getFilePath(publicID)

	h.logger.Info("Starting to save image to local storage", "publicId", publicID)

	err := files_utils.EnsureDirectories([]string{
		h.tempFolder,
		filepath.Dir(finalPath),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	tempFilePath := filepath.Join(h.tempFolder, uuid.New().String())

	tempFile, err := os.Create(tempFilePath)
	if err != nil {
		h.logger.Error(
			"Failed to create temp file",
			"publicId", publicID,
			"tempPath", tempFilePath,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tempFile.Close()
		_, _ = files_utils.RemoveFileIfExists(tempFilePath)
	}()

	limit := h.maxSize
	if limit <= 0 {
		limit = images_models.DefaultMaxImageSize
	}

	written, err := copyWithContext(ctx, tempFile, io.LimitReader(file, limit+1))
	if err != nil {
		h.logger.Error("Failed to write to temp file", "publicId", publicID, "error", err)
		return nil, fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := images_models.ValidateImage(written, fileName, h.maxSize); err != nil {
		return nil, err
	}

	if err = tempFile.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync temp file: %w", err)
	}

	// the file has to be closed before rename on Windows
	if err = tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tempFilePath, finalPath); err != nil {
		h.logger.Error(
			"Failed to move image from temp to images folder",
			"publicId", publicID,
			"tempPath", tempFilePath,
			"finalPath", finalPath,
			"error", err,
		)
		return nil, fmt.Errorf("failed to move image from temp folder: %w", err)
	}

	h.logger.Info(
		"Successfully saved image to local storage",
		"publicId", publicID,
		"finalPath", finalPath,
		"size", written,
	)

	return &images_models.UploadResult{
		SecureURL: h.publicBaseURL + "/images/" + publicID,
		PublicID:  publicID,
	}, nil
}

// Delete treats a missing file as already deleted.
func (h *LocalImageHost) Delete(ctx context.Context, publicID string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := validatePublicID(publicID); err != nil {
		return err
	}

	removed, err := files_utils.RemoveFileIfExists(h.getFilePath(publicID))
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	if !removed {
		h.logger.Debug("Image already absent from local storage", "publicId", publicID)
	}

	return nil
}

func (h *LocalImageHost) getFilePath(publicID string) string {
	return filepath.Join(h.imageFolder, filepath.FromSlash(publicID))
}

func validatePublicID(publicID string) error {
	if publicID == "" {
		return fmt.Errorf("%w: empty", errInvalidPublicID)
	}

	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(publicID)))
	if cleaned != publicID || strings.HasPrefix(cleaned, "../") || cleaned == ".." ||
		filepath.IsAbs(filepath.FromSlash(publicID)) {
		return fmt.Errorf("%w: %s", errInvalidPublicID, publicID)
	}

	return nil
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, localChunkSize)
	var written int64

	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			written += int64(nw)
			if writeErr != nil {
				return written, writeErr
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
		}

		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
