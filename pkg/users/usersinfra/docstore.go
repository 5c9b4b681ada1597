package usersinfra

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/users"
)

const Collection = "users"

type DocstoreUserRepository struct {
	records *docstore.Collection[users.User]
}

func NewDocstoreUserRepository(backend docstore.Backend) users.Repository {
	return &DocstoreUserRepository{
		records: docstore.NewCollection[users.User](backend, Collection),
	}
}

func byID(id kernel.UserID) func(users.User) bool {
	return func(u users.User) bool { return u.ID == id }
}

func (r *DocstoreUserRepository) List(ctx context.Context) ([]users.User, error) {
	return r.records.List(ctx)
}

func (r *DocstoreUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*users.User, error) {
	return r.records.Find(ctx, byID(id))
}

func (r *DocstoreUserRepository) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.records.Find(ctx, func(u users.User) bool { return u.Username == username })
}

func (r *DocstoreUserRepository) Create(ctx context.Context, u users.User) error {
	return r.records.Insert(ctx, u)
}

func (r *DocstoreUserRepository) Update(ctx context.Context, id kernel.UserID, mutate func(*users.User) error) (*users.User, error) {
	return r.records.Update(ctx, byID(id), mutate)
}

func (r *DocstoreUserRepository) Delete(ctx context.Context, id kernel.UserID) (bool, error) {
	return r.records.Delete(ctx, byID(id))
}
