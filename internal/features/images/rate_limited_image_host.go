package images

import (
	"context"
	"fmt"
	"io"
	"math"

	images_models "workspaces-backend/internal/features/images/models"

	"golang.org/x/time/rate"
)

type RateLimitedImageHost struct {
	host    ImageHost
	limiter *rate.Limiter
}

// NewRateLimitedImageHost returns host unchanged when rps is not positive.
func NewRateLimitedImageHost(host ImageHost, rps float64) ImageHost {
	if rps <= 0 {
		return host
	}

	burst := int(math.Max(1, math.Ceil(rps)))

	return &RateLimitedImageHost{
		host:    host,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (h *RateLimitedImageHost) Upload(
	ctx context.Context,
	file io.Reader,
	fileSize int64,
	fileName string,
) (*images_models.UploadResult, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("image host rate limit: %w", err)
	}

	return h.host.Upload(ctx, file, fileSize, fileName)
}

func (h *RateLimitedImageHost) Delete(ctx context.Context, publicID string) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("image host rate limit: %w", err)
	}

	return h.host.Delete(ctx, publicID)
}
