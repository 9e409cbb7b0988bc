package users_models

import (
	"github.com/google/uuid"
)

// User is the caller identity carried by an access token. Users are not
// stored by this service.
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GetDisplayName falls back to "User-" plus the first four characters of the
// id when the token carries no name.
func (u *User) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}

	return "User-" + u.ID.String()[:4]
}
