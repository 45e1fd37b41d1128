package http

import (
	"github.com/google/uuid"

	"github.com/khoahotran/user-gateway/internal/domain/user"
)

// UserDTO is the external shape of a user. The password digest never
// appears here, on any operation.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name"`
	Email string    `json:"email"`
	Title *string   `json:"title"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Title: u.Title,
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

type saveUserRequest struct {
	ID       *uuid.UUID `json:"id"`
	Name     *string    `json:"name"`
	Email    *string    `json:"email"`
	Title    *string    `json:"title"`
	Password *string    `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
