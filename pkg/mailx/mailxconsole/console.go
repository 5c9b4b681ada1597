// Package mailxconsole is a development transport that logs mail instead of
// delivering it.
package mailxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/mailx"
	"github.com/google/uuid"
)

// Factory hands out console transports for any settings.
type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) New(settings mailx.TransportSettings) (mailx.Transport, error) {
	return &Transport{settings: settings}, nil
}

// Transport prints envelopes via logx. Verify always succeeds.
type Transport struct {
	settings mailx.TransportSettings
}

func (t *Transport) Verify(_ context.Context) error {
	logx.WithFields(logx.Fields{
		"host": t.settings.Host,
		"port": t.settings.Port,
		"mode": t.settings.Mode.String(),
	}).Info("mailx/console: connection verified (dev mode)")
	return nil
}

func (t *Transport) Send(_ context.Context, env mailx.Envelope) (string, error) {
	id := "<" + uuid.NewString() + "@console.local>"

	logx.WithFields(logx.Fields{
		"message_id": id,
		"from":       env.From,
		"to":         strings.Join(env.To, ", "),
		"cc":         strings.Join(env.Cc, ", "),
		"bcc":        strings.Join(env.Bcc, ", "),
		"subject":    env.Subject,
	}).Info("mailx/console: email sent (dev mode)")

	if env.Text != "" {
		logx.Debugf("mailx/console: text body:\n%s", env.Text)
	}
	if env.HTML != "" {
		logx.Debugf("mailx/console: html body:\n%s", env.HTML)
	}

	return id, nil
}
