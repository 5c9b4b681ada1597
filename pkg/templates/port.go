package templates

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

type Repository interface {
	ListByUser(ctx context.Context, userID kernel.UserID) ([]Template, error)
	// FindByID returns (nil, nil) when no template has id.
	FindByID(ctx context.Context, id kernel.TemplateID) (*Template, error)
	Create(ctx context.Context, t Template) error
	// Update applies mutate and returns (nil, nil) when no template has id.
	Update(ctx context.Context, id kernel.TemplateID, mutate func(*Template) error) (*Template, error)
	Delete(ctx context.Context, id kernel.TemplateID) (bool, error)
}
