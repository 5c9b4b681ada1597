package mailx

import (
	"context"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userResolution(port int, secure *bool) Resolution {
	return Resolution{
		Config: TransportConfig{
			Host:        "smtp.user.test",
			Port:        port,
			Secure:      secure,
			Credentials: Credentials{Username: "me@user.test", Password: "pw"},
		},
		FromUserSettings: true,
		UserID:           "u1",
	}
}

func verify(t *testing.T, factory *fakeFactory, res Resolution) (*Handle, *Handle, error) {
	t.Helper()
	b := NewBuilder(factory)
	h, err := b.Build(res.Config)
	require.NoError(t, err)
	got, err := NewVerifier(b).VerifyWithFallback(context.Background(), h, res)
	return h, got, err
}

func TestVerifySucceedsFirstTime(t *testing.T) {
	factory := newFakeFactory()

	original, got, err := verify(t, factory, userResolution(465, nil))
	require.NoError(t, err)
	assert.Same(t, original, got)
	assert.Len(t, factory.built, 1)
	assert.Equal(t, 1, factory.totalVerifyCalls())
}

func TestVerifyFallbackSucceeds(t *testing.T) {
	factory := newFakeFactory()
	factory.verifyErrs[ImplicitTLS] = errWrongVersion

	original, got, err := verify(t, factory, userResolution(465, ptrx.Bool(true)))
	require.NoError(t, err)
	assert.NotSame(t, original, got)
	assert.Equal(t, Plain, got.Settings.Mode)
	assert.Equal(t, 465, got.Settings.Port)
	assert.Len(t, factory.built, 2)
	assert.Equal(t, 2, factory.totalVerifyCalls())
}

func TestVerifyFallbackFails(t *testing.T) {
	tests := []struct {
		name           string
		port           int
		secure         *bool
		wantSuggestion string
	}{
		{"from 465", 465, nil, "Try port 587 with SSL/TLS unchecked, or verify your SMTP server supports SSL on port 465."},
		{"from 587", 587, nil, "Try port 465 with SSL/TLS checked, or verify your SMTP server supports STARTTLS on port 587."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			factory.verifyErrs[ImplicitTLS] = errWrongVersion
			factory.verifyErrs[StartTLS] = errWrongVersion
			factory.verifyErrs[Plain] = errWrongVersion

			_, got, err := verify(t, factory, userResolution(tt.port, tt.secure))
			assert.Nil(t, got)
			require.Error(t, err)

			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, ErrFallbackFailed.Code, e.Code)
			assert.Equal(t, "SMTP connection failed. The server may not support the selected port/SSL combination.", e.Message)
			assert.Equal(t, tt.wantSuggestion, e.Detail("suggestion"))
			assert.Contains(t, e.Detail("details"), "Original error: ")
			assert.Contains(t, e.Detail("details"), "Tried alternative: ")
			assert.Len(t, factory.built, 2, "exactly one retry")
			assert.Equal(t, 2, factory.totalVerifyCalls())
		})
	}
}

func TestVerifyNoFallbackForDefaults(t *testing.T) {
	factory := newFakeFactory()
	factory.verifyErrs[ImplicitTLS] = errWrongVersion

	res := userResolution(465, nil)
	res.FromUserSettings = false

	_, got, err := verify(t, factory, res)
	assert.Nil(t, got)
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrTLSNegotiation.Code, e.Code)
	assert.Equal(t, "tls_negotiation", e.Detail("class"))
	assert.Len(t, factory.built, 1)
}

func TestVerifyNoFallbackForOtherClasses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"authentication", errBadAuth, ErrAuthentication.Code},
		{"unclassified", errMailbox, ErrVerifyFailed.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			factory.verifyErrs[ImplicitTLS] = tt.err

			_, _, err := verify(t, factory, userResolution(465, nil))
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, 500, e.HTTPStatus)
			assert.Len(t, factory.built, 1)
			assert.Equal(t, 1, factory.totalVerifyCalls())
		})
	}
}
