package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"workspaces-backend/internal/config"
	azure_image_host "workspaces-backend/internal/features/images/azure"
	local_image_host "workspaces-backend/internal/features/images/local"
	minio_image_host "workspaces-backend/internal/features/images/minio"
	"workspaces-backend/internal/util/logger"
)

const connectTimeout = 30 * time.Second

var (
	imageHost     ImageHost
	imageHostOnce sync.Once
)

func GetImageHost() ImageHost {
	imageHostOnce.Do(func() {
		log := logger.GetLogger()

		host, err := NewImageHost(context.Background(), config.GetEnv(), log)
		if err != nil {
			log.Error("Failed to initialize image host", "error", err)
			os.Exit(1)
		}

		imageHost = host
	})

	return imageHost
}

// NewImageHost builds the backend selected by IMAGE_STORAGE_TYPE and wraps it
// with the rate limiter when IMAGE_HOST_RPS is set.
func NewImageHost(
	ctx context.Context,
	env config.EnvVariables,
	logger *slog.Logger,
) (ImageHost, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var host ImageHost

	switch env.ImageStorageType {
	case config.ImageStorageLocal:
		host = local_image_host.NewLocalImageHost(
			env.ImageFolder,
			env.TempFolder,
			env.PublicBaseURL,
			env.MaxImageSizeBytes(),
			logger,
		)
	case config.ImageStorageMinio:
		minioHost, err := minio_image_host.NewMinioImageHost(
			ctx,
			env.MinioEndpoint,
			env.MinioAccessKey,
			env.MinioSecretKey,
			env.MinioBucket,
			env.MinioUseSSL,
			env.MaxImageSizeBytes(),
			logger,
		)
		if err != nil {
			return nil, err
		}
		host = minioHost
	case config.ImageStorageAzure:
		azureHost, err := azure_image_host.NewAzureImageHost(
			ctx,
			env.AzureConnectionString,
			env.AzureContainer,
			env.MaxImageSizeBytes(),
			logger,
		)
		if err != nil {
			return nil, err
		}
		host = azureHost
	default:
		return nil, fmt.Errorf("unknown image storage type: %s", env.ImageStorageType)
	}

	logger.Info(
		"Image host initialized",
		"type", env.ImageStorageType,
		"rps", env.ImageHostRPS,
	)

	return NewRateLimitedImageHost(host, env.ImageHostRPS), nil
}
