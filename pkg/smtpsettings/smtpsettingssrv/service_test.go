package smtpsettingssrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings/smtpsettingsinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*SettingsService, *docstore.MemoryBackend) {
	t.Helper()
	backend := docstore.NewMemoryBackend()
	svc := NewSettingsService(smtpsettingsinfra.NewDocstoreSettingsRepository(backend))
	return svc, backend
}

func validRequest() smtpsettings.SaveRequest {
	return smtpsettings.SaveRequest{
		UserID:   "u1",
		Host:     "smtp.example.com",
		Port:     587,
		User:     "me@example.com",
		Password: "pw",
	}
}

func TestSaveDefaultsSecureAndPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	saved, created, err := svc.Save(ctx, validRequest())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, ptrx.Bool(true), saved.Secure)
	assert.Equal(t, first, saved.CreatedAt)

	later := first.Add(time.Hour)
	svc.now = func() time.Time { return later }
	req := validRequest()
	req.Secure = ptrx.Bool(false)
	req.Host = "smtp2.example.com"

	saved, created, err = svc.Save(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, saved.CreatedAt)
	assert.Equal(t, later, saved.UpdatedAt)
	assert.Equal(t, ptrx.Bool(false), saved.Secure)
	assert.Equal(t, "smtp2.example.com", saved.Host)
}

func TestSaveValidation(t *testing.T) {
	svc, _ := newTestService(t)
	req := validRequest()
	req.Password = ""

	_, _, err := svc.Save(context.Background(), req)
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 400, e.HTTPStatus)
	assert.Equal(t, "userId, host, port, user, and password are required", e.Message)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Get(ctx, "")
	assert.True(t, errx.Is(err, smtpsettings.ErrUserIDRequired()))

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, _, err = svc.Save(ctx, validRequest())
	require.NoError(t, err)

	got, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "smtp.example.com", got.Host)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	err := svc.Delete(ctx, "u1")
	assert.True(t, errx.Is(err, smtpsettings.ErrNotFound()))

	_, _, err = svc.Save(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "u1"))

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindMailSettings(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(t)

	// Records written by hand may carry a string port and no secure flag.
	require.NoError(t, backend.Save(ctx, smtpsettingsinfra.Collection, []byte(`[
  {"userId": "legacy", "host": "mail.legacy.test", "port": "465", "user": "old@legacy.test", "password": "pw"}
]`)))

	got, err := svc.FindMailSettings(ctx, "legacy")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 465, got.Port)
	assert.Nil(t, got.Secure)
	assert.Equal(t, "old@legacy.test", got.Username)

	missing, err := svc.FindMailSettings(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
