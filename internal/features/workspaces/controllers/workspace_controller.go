package workspaces_controllers

import (
	"errors"
	"net/http"

	"workspaces-backend/internal/features/audit_logs"
	users_middleware "workspaces-backend/internal/features/users/middleware"
	workspaces_dto "workspaces-backend/internal/features/workspaces/dto"
	workspaces_services "workspaces-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
}

func (c *WorkspaceController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceRoutes := router.Group("/workspaces")

	workspaceRoutes.POST("", c.CreateWorkspace)
	workspaceRoutes.GET("", c.GetWorkspaces)
	workspaceRoutes.GET("/:id", c.GetWorkspace)
	workspaceRoutes.PATCH("/:id", c.UpdateWorkspace)
	workspaceRoutes.DELETE("/:id", c.DeleteWorkspace)
	workspaceRoutes.GET("/:id/audit-logs", c.GetWorkspaceAuditLogs)
}

// CreateWorkspace
// @Summary Create a new workspace
// @Description Create a workspace with an image. The caller becomes its owner
// @Tags workspaces
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Workspace name"
// @Param description formData string true "Workspace description"
// @Param theme formData string true "Workspace theme"
// @Param image formData file true "Workspace image (.jpg, .jpeg, .png, .webp)"
// @Success 201 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /workspaces [post]
func (c *WorkspaceController) CreateWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request workspaces_dto.CreateWorkspaceRequestDTO
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	image, closeImage, err := readImage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		return
	}
	defer closeImage()

	response, err := c.workspaceService.CreateWorkspace(ctx.Request.Context(), &request, image, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// GetWorkspaces
// @Summary List workspaces of a member
// @Description Get workspaces the given user (the caller by default) belongs to
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Member user ID"
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /workspaces [get]
func (c *WorkspaceController) GetWorkspaces(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID := user.ID
	if userIDStr := ctx.Query("userId"); userIDStr != "" {
		parsedUserID, err := uuid.Parse(userIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		userID = parsedUserID
	}

	response, err := c.workspaceService.GetMemberWorkspaces(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspace
// @Summary Get workspace details
// @Description Get a workspace with its members and the caller's role in it
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [get]
func (c *WorkspaceController) GetWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	workspace, err := c.workspaceService.GetWorkspace(workspaceID, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, workspace)
}

// UpdateWorkspace
// @Summary Update workspace
// @Description Update any subset of name, description, theme and image (owner only)
// @Tags workspaces
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param name formData string false "Workspace name"
// @Param description formData string false "Workspace description"
// @Param theme formData string false "Workspace theme"
// @Param image formData file false "Workspace image (.jpg, .jpeg, .png, .webp)"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /workspaces/{id} [patch]
func (c *WorkspaceController) UpdateWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var request workspaces_dto.UpdateWorkspaceRequestDTO
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	image, closeImage, err := readImage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		return
	}
	defer closeImage()

	response, err := c.workspaceService.UpdateWorkspace(
		ctx.Request.Context(),
		workspaceID,
		&request,
		image,
		user,
	)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteWorkspace
// @Summary Delete workspace
// @Description Soft-delete a workspace (owner only)
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [delete]
func (c *WorkspaceController) DeleteWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	if err := c.workspaceService.DeleteWorkspace(workspaceID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetWorkspaceAuditLogs
// @Summary Get workspace audit logs
// @Description Retrieve audit logs for a specific workspace (member access required)
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/audit-logs [get]
func (c *WorkspaceController) GetWorkspaceAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.workspaceService.GetWorkspaceAuditLogs(workspaceID, user, request)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// readImage returns the "image" form file, or nil when the request has none.
// The returned close func is always safe to call.
func readImage(ctx *gin.Context) (*workspaces_dto.ImageUpload, func(), error) {
	noop := func() {}

	header, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	image := &workspaces_dto.ImageUpload{
		Content:  file,
		FileName: header.Filename,
		Size:     header.Size,
	}

	return image, func() { _ = file.Close() }, nil
}
