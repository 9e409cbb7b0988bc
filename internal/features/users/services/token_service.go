package users_services

import (
	"errors"
	"fmt"
	"time"

	users_dto "workspaces-backend/internal/features/users/dto"
	users_models "workspaces-backend/internal/features/users/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const defaultTokenTTL = time.Hour * 24 * 30

var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies HS256 access tokens. The subject is the
// user id and the optional "name" claim is the display name.
type TokenService struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewTokenService(secretKey string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &TokenService{secretKey: secretKey, tokenTTL: tokenTTL}
}

func (s *TokenService) GetUserFromToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	user := &users_models.User{ID: userID}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}

	return user, nil
}

func (s *TokenService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.AccessTokenResponseDTO, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	}
	if user.Name != "" {
		claims["name"] = user.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.AccessTokenResponseDTO{
		UserID: user.ID,
		Name:   user.Name,
		Token:  tokenString,
	}, nil
}
