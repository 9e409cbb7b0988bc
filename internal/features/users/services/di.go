package users_services

import (
	"workspaces-backend/internal/config"
)

var tokenService = NewTokenService(config.GetEnv().JWTSecret, defaultTokenTTL)

func GetTokenService() *TokenService {
	return tokenService
}
