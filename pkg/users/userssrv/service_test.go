package userssrv

import (
	"context"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/Abraxas-365/mailer/pkg/users"
	"github.com/Abraxas-365/mailer/pkg/users/usersinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *UserService {
	return NewUserService(usersinfra.NewDocstoreUserRepository(docstore.NewMemoryBackend()))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Create(ctx, users.CreateRequest{Username: "ada", Password: "pw", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ada", u.Username)

	_, err = svc.Create(ctx, users.CreateRequest{Username: "ada", Password: "other"})
	assert.True(t, errx.Is(err, users.ErrUsernameTaken()))

	_, err = svc.Create(ctx, users.CreateRequest{Username: "bob"})
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 400, e.HTTPStatus)
	assert.Equal(t, "Username and password are required", e.Message)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	ada, err := svc.Create(ctx, users.CreateRequest{Username: "ada", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, users.CreateRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, ada.ID, users.UpdateRequest{Username: "bob"})
	assert.True(t, errx.Is(err, users.ErrUsernameTaken()))

	updated, err := svc.Update(ctx, ada.ID, users.UpdateRequest{Username: "ada", Password: "new", Email: ptrx.String("a@x.test")})
	require.NoError(t, err)
	assert.Equal(t, "a@x.test", updated.Email)

	ok, err := svc.CheckCredentials(ctx, "ada", "new")
	require.NoError(t, err)
	require.NotNil(t, ok)
	assert.Equal(t, ada.ID, ok.ID)

	_, err = svc.Update(ctx, "missing", users.UpdateRequest{Email: ptrx.String("")})
	assert.True(t, errx.Is(err, users.ErrNotFound()))
}

func TestCheckCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, users.CreateRequest{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	got, err := svc.CheckCredentials(ctx, "ada", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.CheckCredentials(ctx, "nobody", "pw")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	ada, err := svc.Create(ctx, users.CreateRequest{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)

	require.NoError(t, svc.Delete(ctx, ada.ID))
	assert.True(t, errx.Is(svc.Delete(ctx, ada.ID), users.ErrNotFound()))

	_, err = svc.Get(ctx, ada.ID)
	assert.True(t, errx.Is(err, users.ErrNotFound()))
}
