package azure_image_host

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	images_models "workspaces-backend/internal/features/images/models"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

const maxRetries = 3

type AzureImageHost struct {
	client    *azblob.Client
	container string
	maxSize   int64
	logger    *slog.Logger
}

// NewAzureImageHost connects with a connection string and creates the
// container when it does not exist yet.
func NewAzureImageHost(
	ctx context.Context,
	connectionString string,
	container string,
	maxSize int64,
	logger *slog.Logger,
) (*AzureImageHost, error) {
	client, err := azblob.NewClientFromConnectionString(
		connectionString,
		&azblob.ClientOptions{
			ClientOptions: azcore.ClientOptions{
				Retry: policy.RetryOptions{MaxRetries: maxRetries},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", container, err)
	}

	return &AzureImageHost{
		client:    client,
		container: container,
		maxSize:   maxSize,
		logger:    logger,
	}, nil
}

func (h *AzureImageHost) Upload(
	ctx context.Context,
	file io.Reader,
	fileSize int64,
	fileName string,
) (*images_models.UploadResult, error) {
	if err := images_models.ValidateImage(fileSize, fileName, h.maxSize); err != nil {
		return nil, err
	}

	publicID := images_models.NewPublicID(fileName)
	contentType := images_models.GetContentType(fileName)

	_, err := h.client.UploadStream(
		ctx,
		h.container,
		publicID,
		io.LimitReader(file, fileSize),
		&azblob.UploadStreamOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image to azure: %w", err)
	}

	h.logger.Info("Uploaded image to azure", "publicId", publicID, "container", h.container)

	blobURL := h.client.ServiceClient().
		NewContainerClient(h.container).
		NewBlobClient(publicID).
		URL()

	return &images_models.UploadResult{
		SecureURL: blobURL,
		PublicID:  publicID,
	}, nil
}

func (h *AzureImageHost) Delete(ctx context.Context, publicID string) error {
	_, err := h.client.DeleteBlob(ctx, h.container, publicID, nil)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image from azure: %w", err)
	}

	return nil
}

func isNotFound(err error) bool {
	return bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound)
}
