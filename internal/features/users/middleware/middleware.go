package users_middleware

import (
	"net/http"
	"strings"

	users_models "workspaces-backend/internal/features/users/models"
	users_services "workspaces-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware resolves the bearer token into a user and aborts with 401
// when it is missing or invalid.
func AuthMiddleware(tokenService *users_services.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx.GetHeader("Authorization"))
		if token == "" {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "User not authenticated"},
			)
			return
		}

		user, err := tokenService.GetUserFromToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "User not authenticated"},
			)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok && user != nil
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}

	return header
}
