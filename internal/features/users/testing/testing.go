package users_testing

import (
	users_models "workspaces-backend/internal/features/users/models"
	users_services "workspaces-backend/internal/features/users/services"

	"github.com/google/uuid"
)

type TestUser struct {
	User  *users_models.User
	Token string
}

// CreateTestUser returns a fresh identity with a token signed by the
// process-wide token service.
func CreateTestUser(name string) *TestUser {
	user := &users_models.User{ID: uuid.New(), Name: name}

	response, err := users_services.GetTokenService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return &TestUser{User: user, Token: response.Token}
}

func (u *TestUser) GetAuthHeader() string {
	return "Bearer " + u.Token
}
