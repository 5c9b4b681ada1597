package smtpsettings

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

type Repository interface {
	// FindByUser returns (nil, nil) when the user has no settings.
	FindByUser(ctx context.Context, userID kernel.UserID) (*SettingsRecord, error)
	List(ctx context.Context) ([]SettingsRecord, error)
	// Upsert stores rec keyed by user and reports whether it was created.
	// CreatedAt of an existing record is preserved.
	Upsert(ctx context.Context, rec SettingsRecord) (SettingsRecord, bool, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, userID kernel.UserID) (bool, error)
}
