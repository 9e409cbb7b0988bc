package images_models

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultMaxImageSize int64 = 100 * 1024 * 1024
	PublicIDFolder            = "workspaces"
)

var ErrInvalidImage = errors.New("invalid image")

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

type UploadResult struct {
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId"`
}

// ValidateImage is shared by every backend so they reject the same payloads.
func ValidateImage(fileSize int64, fileName string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}

	if fileSize <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidImage)
	}

	if fileSize > maxSize {
		return fmt.Errorf(
			"%w: file size %d exceeds the limit of %d bytes",
			ErrInvalidImage,
			fileSize,
			maxSize,
		)
	}

	extension := strings.ToLower(filepath.Ext(fileName))
	if !slices.Contains(allowedExtensions, extension) {
		return fmt.Errorf(
			"%w: extension %q is not allowed, use one of %s",
			ErrInvalidImage,
			extension,
			strings.Join(allowedExtensions, ", "),
		)
	}

	return nil
}

// NewPublicID returns a fresh handle such as "workspaces/<uuid>.png".
func NewPublicID(fileName string) string {
	return PublicIDFolder + "/" + uuid.New().String() + strings.ToLower(filepath.Ext(fileName))
}

func GetContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
