package users_middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	users_models "workspaces-backend/internal/features/users/models"
	users_services "workspaces-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokenService := users_services.NewTokenService("secret", time.Hour)
	user := &users_models.User{ID: uuid.New(), Name: "Alice"}

	response, err := tokenService.GenerateAccessToken(user)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(tokenService))
	router.GET("/me", func(ctx *gin.Context) {
		caller, ok := GetUserFromContext(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, caller)
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "bearer token", header: "Bearer " + response.Token, expectedStatus: http.StatusOK},
		{name: "lower case scheme", header: "bearer " + response.Token, expectedStatus: http.StatusOK},
		{name: "raw token", header: response.Token, expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), user.ID.String())
			} else {
				assert.Contains(t, w.Body.String(), "User not authenticated")
			}
		})
	}
}

func Test_GetUserFromContext_WhenMissing_ReturnsFalse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	user, ok := GetUserFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, user)
}
