package workspaces_controllers

import (
	"errors"
	"net/http"

	workspaces_services "workspaces-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
)

// respondWithServiceError maps service sentinels to HTTP statuses.
func respondWithServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, workspaces_services.ErrValidation),
		errors.Is(err, workspaces_services.ErrConflict):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workspaces_services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workspaces_services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workspaces_services.ErrUpload):
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
