package mailx

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSecurity(t *testing.T) {
	tests := []struct {
		name           string
		port           int
		explicit       *bool
		wantSecure     bool
		wantRequireTLS bool
		wantMode       SecurityMode
	}{
		{"465 inferred", 465, nil, true, false, ImplicitTLS},
		{"587 inferred", 587, nil, false, true, StartTLS},
		{"25 inferred", 25, nil, false, false, Plain},
		{"custom port inferred", 2525, nil, false, false, Plain},
		{"465 forced secure despite false", 465, ptrx.Bool(false), true, false, ImplicitTLS},
		{"587 explicit secure", 587, ptrx.Bool(true), true, false, ImplicitTLS},
		{"587 explicit insecure", 587, ptrx.Bool(false), false, true, StartTLS},
		{"25 forced plain despite true", 25, ptrx.Bool(true), false, false, Plain},
		{"custom port explicit secure", 2525, ptrx.Bool(true), true, false, ImplicitTLS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secure, requireTLS := ResolveSecurity(tt.port, tt.explicit)
			assert.Equal(t, tt.wantSecure, secure)
			assert.Equal(t, tt.wantRequireTLS, requireTLS)
			assert.Equal(t, tt.wantMode, Settings(TransportConfig{Port: tt.port, Secure: tt.explicit}).Mode)
		})
	}
}

func TestSettingsIsDeterministic(t *testing.T) {
	cfg := TransportConfig{
		Host:        "smtp.example.com",
		Port:        587,
		Credentials: Credentials{Username: "a@example.com", Password: "pw"},
	}
	first := Settings(cfg)
	second := Settings(cfg)
	assert.Equal(t, first, second)
	assert.Equal(t, DefaultTimeouts(), first.Timeouts)
	assert.Equal(t, DefaultTLSPolicy(), first.TLS)
}

func TestBuildAlternate(t *testing.T) {
	tests := []struct {
		name     string
		port     int
		explicit *bool
		wantMode SecurityMode
	}{
		{"465 flips to plain on the same port", 465, nil, Plain},
		{"587 inferred flips to implicit TLS", 587, nil, ImplicitTLS},
		{"587 explicit secure flips back to STARTTLS", 587, ptrx.Bool(true), StartTLS},
		{"25 flips to implicit TLS without the port override", 25, nil, ImplicitTLS},
		{"custom secure port flips to plain", 2525, ptrx.Bool(true), Plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			b := NewBuilder(factory)

			h, err := b.BuildAlternate(TransportConfig{Host: "smtp.example.com", Port: tt.port, Secure: tt.explicit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, h.Settings.Mode)
			assert.Equal(t, tt.port, h.Settings.Port)
			assert.Equal(t, "smtp.example.com", h.Settings.Host)
		})
	}
}

func TestBuildFactoryFailure(t *testing.T) {
	factory := newFakeFactory()
	factory.newErr = errors.New("no hostname")

	_, err := NewBuilder(factory).Build(TransportConfig{Port: 465})
	require.Error(t, err)
	assert.True(t, errx.Is(err, mailErrors.New(ErrTransportSetup)))
}
