package mailx

import (
	"github.com/Abraxas-365/mailer/pkg/ptrx"
)

// ResolveSecurity derives the TLS flags for a port and an optional explicit
// secure flag. Port 465 always means implicit TLS and port 25 always means
// plaintext, whatever was requested.
func ResolveSecurity(port int, explicit *bool) (secure, requireTLS bool) {
	secure = ptrx.ValueOr(explicit, port == 465)
	requireTLS = port == 587 && !secure

	switch port {
	case 465:
		secure, requireTLS = true, false
	case 25:
		secure, requireTLS = false, false
	}
	return secure, requireTLS
}

func modeFor(secure, requireTLS bool) SecurityMode {
	switch {
	case secure:
		return ImplicitTLS
	case requireTLS:
		return StartTLS
	default:
		return Plain
	}
}

// Builder turns a TransportConfig into a Handle.
type Builder struct {
	factory TransportFactory
}

func NewBuilder(factory TransportFactory) *Builder {
	return &Builder{factory: factory}
}

// Settings resolves cfg without side effects.
func Settings(cfg TransportConfig) TransportSettings {
	secure, requireTLS := ResolveSecurity(cfg.Port, cfg.Secure)
	return newSettings(cfg, secure, requireTLS)
}

func newSettings(cfg TransportConfig, secure, requireTLS bool) TransportSettings {
	timeouts := cfg.Timeouts
	if timeouts == (Timeouts{}) {
		timeouts = DefaultTimeouts()
	}
	policy := cfg.TLS
	if policy == (TLSPolicy{}) {
		policy = DefaultTLSPolicy()
	}
	return TransportSettings{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Mode:        modeFor(secure, requireTLS),
		Secure:      secure,
		RequireTLS:  requireTLS,
		Credentials: cfg.Credentials,
		Timeouts:    timeouts,
		TLS:         policy,
	}
}

// Build creates a handle for cfg.
func (b *Builder) Build(cfg TransportConfig) (*Handle, error) {
	return b.handle(Settings(cfg))
}

// BuildAlternate creates a handle with the opposite implicit-TLS choice.
// Only the 587 requireTLS rule is re-applied; the 465/25 overrides are not,
// so the port is kept while the TLS strategy flips.
func (b *Builder) BuildAlternate(cfg TransportConfig) (*Handle, error) {
	secure, _ := ResolveSecurity(cfg.Port, cfg.Secure)
	altSecure := !secure
	altRequireTLS := cfg.Port == 587 && !altSecure
	return b.handle(newSettings(cfg, altSecure, altRequireTLS))
}

func (b *Builder) handle(settings TransportSettings) (*Handle, error) {
	transport, err := b.factory.New(settings)
	if err != nil {
		return nil, mailErrors.NewWithCause(ErrTransportSetup, err).
			WithDetail("details", err.Error())
	}
	return &Handle{Settings: settings, Transport: transport}, nil
}
