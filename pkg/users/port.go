package users

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	// FindByID and FindByUsername return (nil, nil) when nothing matches.
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, id kernel.UserID, mutate func(*User) error) (*User, error)
	Delete(ctx context.Context, id kernel.UserID) (bool, error)
}
