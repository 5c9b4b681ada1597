// Package mailx resolves per-user SMTP configuration, turns it into a
// transport handle, verifies connectivity (with a single fallback attempt on
// TLS negotiation failures) and delivers single and bulk messages.
//
// Nothing here is cached or shared between requests: every send resolves its
// own config and builds its own handle.
package mailx

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

// DefaultTimeout applies to connect, greeting and socket operations.
const DefaultTimeout = 10 * time.Second

// SecurityMode is the resolved TLS negotiation strategy of a transport.
type SecurityMode string

const (
	// ImplicitTLS negotiates TLS immediately on connect (port 465).
	ImplicitTLS SecurityMode = "implicit_tls"
	// StartTLS connects in plaintext and must upgrade via STARTTLS (port 587).
	StartTLS SecurityMode = "starttls"
	// Plain connects in plaintext; the upgrade is used only if the server offers it.
	Plain SecurityMode = "plain"
)

func (m SecurityMode) String() string { return string(m) }

// Credentials authenticate against the SMTP server.
type Credentials struct {
	Username string
	Password string
}

// Timeouts bound each phase of an SMTP session.
type Timeouts struct {
	Connect  time.Duration
	Greeting time.Duration
	Socket   time.Duration
}

// DefaultTimeouts returns the fixed 10s connect/greeting/socket timeouts.
func DefaultTimeouts() Timeouts {
	return Timeouts{Connect: DefaultTimeout, Greeting: DefaultTimeout, Socket: DefaultTimeout}
}

// TLSPolicy is applied to every TLS handshake, implicit or STARTTLS.
type TLSPolicy struct {
	MinVersion uint16
	// SkipVerify accepts self-signed and otherwise unverifiable server
	// certificates. Per-user SMTP servers are commonly self-hosted.
	SkipVerify bool
}

// DefaultTLSPolicy requires TLS 1.2+ and does not validate certificates.
func DefaultTLSPolicy() TLSPolicy {
	return TLSPolicy{MinVersion: tls.VersionTLS12, SkipVerify: true}
}

// ClientConfig builds the crypto/tls config for host.
func (p TLSPolicy) ClientConfig(host string) *tls.Config {
	return &tls.Config{
		ServerName:         host,
		MinVersion:         p.MinVersion,
		InsecureSkipVerify: p.SkipVerify, //nolint:gosec // self-signed SMTP endpoints are accepted on purpose
	}
}

// TransportConfig is the input of the Builder. Secure is the explicit
// security flag; nil means "infer from the port".
type TransportConfig struct {
	Host        string
	Port        int
	Secure      *bool
	Credentials Credentials
	Timeouts    Timeouts
	TLS         TLSPolicy
}

// TransportSettings is a TransportConfig with the security mode resolved.
type TransportSettings struct {
	Host        string
	Port        int
	Mode        SecurityMode
	Secure      bool
	RequireTLS  bool
	Credentials Credentials
	Timeouts    Timeouts
	TLS         TLSPolicy
}

// Transport is a configured connection factory for one SMTP server.
type Transport interface {
	// Verify connects, greets, negotiates TLS and authenticates without
	// sending a message.
	Verify(ctx context.Context) error
	// Send delivers one envelope and returns the Message-ID it was sent with.
	Send(ctx context.Context, env Envelope) (string, error)
}

// TransportFactory creates transports from resolved settings.
type TransportFactory interface {
	New(settings TransportSettings) (Transport, error)
}

// TransportFactoryFunc adapts a function to TransportFactory.
type TransportFactoryFunc func(settings TransportSettings) (Transport, error)

func (f TransportFactoryFunc) New(settings TransportSettings) (Transport, error) {
	return f(settings)
}

// Handle is a transport bound to the settings it was built from. A handle
// belongs to a single request.
type Handle struct {
	Settings  TransportSettings
	Transport Transport
}

// UserSettings is a per-user SMTP record as seen by the resolver.
type UserSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   *bool
}

// SettingsFinder looks up per-user SMTP settings. A nil result with a nil
// error means the user has none.
type SettingsFinder interface {
	FindMailSettings(ctx context.Context, userID kernel.UserID) (*UserSettings, error)
}
