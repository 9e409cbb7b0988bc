package users_dto

import (
	"github.com/google/uuid"
)

type AccessTokenResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Token  string    `json:"token"`
}
