// Package users manages the accounts that may log in to the mailer.
package users

import (
	"time"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

// User is stored with its password in plaintext; passwords never leave the
// service layer.
type User struct {
	ID        kernel.UserID `json:"id"`
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	Email     string        `json:"email"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Public struct {
	ID        kernel.UserID `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (u User) Public() Public {
	return Public{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CreateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdateRequest is a partial update. Empty Username and Password are
// ignored; Email is applied whenever present.
type UpdateRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
}
