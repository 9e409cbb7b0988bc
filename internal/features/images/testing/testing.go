package images_testing

import (
	"context"
	"fmt"
	"io"
	"sync"

	images_models "workspaces-backend/internal/features/images/models"
)

// FakeImageHost keeps assets in memory and can be told to fail.
type FakeImageHost struct {
	mu sync.Mutex

	assets    map[string][]byte
	uploadErr error
	deleteErr error

	uploadCalls int
	deleteCalls []string
}

func NewFakeImageHost() *FakeImageHost {
	return &FakeImageHost{assets: make(map[string][]byte)}
}

func (h *FakeImageHost) Upload(
	ctx context.Context,
	file io.Reader,
	fileSize int64,
	fileName string,
) (*images_models.UploadResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.uploadCalls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := images_models.ValidateImage(
		fileSize,
		fileName,
		images_models.DefaultMaxImageSize,
	); err != nil {
		return nil, err
	}

	if h.uploadErr != nil {
		return nil, h.uploadErr
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	publicID := images_models.NewPublicID(fileName)
	h.assets[publicID] = content

	return &images_models.UploadResult{
		SecureURL: "https://images.example.com/" + publicID,
		PublicID:  publicID,
	}, nil
}

func (h *FakeImageHost) Delete(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deleteCalls = append(h.deleteCalls, publicID)

	if h.deleteErr != nil {
		return h.deleteErr
	}

	delete(h.assets, publicID)
	return nil
}

func (h *FakeImageHost) SetUploadError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uploadErr = err
}

func (h *FakeImageHost) SetDeleteError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleteErr = err
}

func (h *FakeImageHost) HasAsset(publicID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.assets[publicID]
	return ok
}

// AddAsset registers an asset as if it had been uploaded earlier.
func (h *FakeImageHost) AddAsset(publicID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.assets[publicID] = []byte{}
}

func (h *FakeImageHost) AssetCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.assets)
}

func (h *FakeImageHost) UploadCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uploadCalls
}

func (h *FakeImageHost) DeleteCalls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.deleteCalls...)
}
