package mailx

import (
	"context"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/logx"
)

// Defaults is the process-wide SMTP configuration used when a request has
// no user or the user has no settings.
type Defaults struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Resolution is the effective transport config for one request.
type Resolution struct {
	Config TransportConfig
	// FromUserSettings is true only when a per-user record was found. It
	// gates the security fallback.
	FromUserSettings bool
	UserID           kernel.UserID
}

// Sender is the From address of outgoing mail: the authenticated username.
func (r Resolution) Sender() string {
	return r.Config.Credentials.Username
}

// Resolver picks per-user settings or process defaults.
type Resolver struct {
	settings SettingsFinder
	defaults Defaults
	timeouts Timeouts
	tls      TLSPolicy
}

func NewResolver(settings SettingsFinder, defaults Defaults) *Resolver {
	return &Resolver{
		settings: settings,
		defaults: defaults,
		timeouts: DefaultTimeouts(),
		tls:      DefaultTLSPolicy(),
	}
}

// Resolve never fails: a missing user, a missing record or an unreadable
// store all fall back to the defaults.
func (r *Resolver) Resolve(ctx context.Context, userID kernel.UserID) Resolution {
	userID = kernel.UserID(strings.TrimSpace(userID.String()))
	if userID.IsEmpty() || r.settings == nil {
		return r.fromDefaults(userID)
	}

	record, err := r.settings.FindMailSettings(ctx, userID)
	if err != nil {
		logx.WithFields(logx.Fields{
			"user_id": userID.String(),
		}).WithError(err).Warn("Failed to read SMTP settings, using defaults")
		return r.fromDefaults(userID)
	}
	if record == nil {
		return r.fromDefaults(userID)
	}

	return Resolution{
		Config: TransportConfig{
			Host:        record.Host,
			Port:        record.Port,
			Secure:      record.Secure,
			Credentials: Credentials{Username: record.Username, Password: record.Password},
			Timeouts:    r.timeouts,
			TLS:         r.tls,
		},
		FromUserSettings: true,
		UserID:           userID,
	}
}

func (r *Resolver) fromDefaults(userID kernel.UserID) Resolution {
	return Resolution{
		Config: TransportConfig{
			Host:        r.defaults.Host,
			Port:        r.defaults.Port,
			Credentials: Credentials{Username: r.defaults.Username, Password: r.defaults.Password},
			Timeouts:    r.timeouts,
			TLS:         r.tls,
		},
		UserID: userID,
	}
}
