package templatesinfra

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/templates"
)

const Collection = "templates"

type DocstoreTemplateRepository struct {
	records *docstore.Collection[templates.Template]
}

func NewDocstoreTemplateRepository(backend docstore.Backend) templates.Repository {
	return &DocstoreTemplateRepository{
		records: docstore.NewCollection[templates.Template](backend, Collection),
	}
}

func byID(id kernel.TemplateID) func(templates.Template) bool {
	return func(t templates.Template) bool { return t.ID == id }
}

func (r *DocstoreTemplateRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]templates.Template, error) {
	return r.records.Filter(ctx, func(t templates.Template) bool { return t.UserID == userID })
}

func (r *DocstoreTemplateRepository) FindByID(ctx context.Context, id kernel.TemplateID) (*templates.Template, error) {
	return r.records.Find(ctx, byID(id))
}

func (r *DocstoreTemplateRepository) Create(ctx context.Context, t templates.Template) error {
	return r.records.Insert(ctx, t)
}

func (r *DocstoreTemplateRepository) Update(ctx context.Context, id kernel.TemplateID, mutate func(*templates.Template) error) (*templates.Template, error) {
	return r.records.Update(ctx, byID(id), mutate)
}

func (r *DocstoreTemplateRepository) Delete(ctx context.Context, id kernel.TemplateID) (bool, error) {
	return r.records.Delete(ctx, byID(id))
}
