package smtpsettingsinfra

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings"
)

// Collection is the document holding every user's settings.
const Collection = "smtp"

type DocstoreSettingsRepository struct {
	records *docstore.Collection[smtpsettings.SettingsRecord]
}

func NewDocstoreSettingsRepository(backend docstore.Backend) smtpsettings.Repository {
	return &DocstoreSettingsRepository{
		records: docstore.NewCollection[smtpsettings.SettingsRecord](backend, Collection),
	}
}

func byUser(userID kernel.UserID) func(smtpsettings.SettingsRecord) bool {
	return func(r smtpsettings.SettingsRecord) bool { return r.UserID == userID }
}

func (r *DocstoreSettingsRepository) FindByUser(ctx context.Context, userID kernel.UserID) (*smtpsettings.SettingsRecord, error) {
	return r.records.Find(ctx, byUser(userID))
}

func (r *DocstoreSettingsRepository) List(ctx context.Context) ([]smtpsettings.SettingsRecord, error) {
	return r.records.List(ctx)
}

func (r *DocstoreSettingsRepository) Upsert(ctx context.Context, rec smtpsettings.SettingsRecord) (smtpsettings.SettingsRecord, bool, error) {
	return r.records.Upsert(ctx, byUser(rec.UserID), func(existing *smtpsettings.SettingsRecord) smtpsettings.SettingsRecord {
		if existing != nil {
			rec.CreatedAt = existing.CreatedAt
		}
		return rec
	})
}

func (r *DocstoreSettingsRepository) Delete(ctx context.Context, userID kernel.UserID) (bool, error) {
	return r.records.Delete(ctx, byUser(userID))
}
