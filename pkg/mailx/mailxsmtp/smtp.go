// Package mailxsmtp implements mailx.Transport on top of go-mail.
package mailxsmtp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/mailx"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Factory builds SMTP transports. It holds no connection state.
type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

// New validates settings eagerly so a bad host fails at build time.
func (f *Factory) New(settings mailx.TransportSettings) (mailx.Transport, error) {
	t := &Transport{settings: settings}
	if _, err := t.client(); err != nil {
		return nil, err
	}
	return t, nil
}

// Transport dials a new SMTP session per operation.
type Transport struct {
	settings mailx.TransportSettings
}

func (t *Transport) client() (*mail.Client, error) {
	s := t.settings
	opts := []mail.Option{
		mail.WithTimeout(s.Timeouts.Socket),
		mail.WithTLSConfig(s.TLS.ClientConfig(s.Host)),
	}

	switch s.Mode {
	case mailx.ImplicitTLS:
		opts = append(opts, mail.WithSSL())
	case mailx.StartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if s.Credentials.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
			mail.WithUsername(s.Credentials.Username),
			mail.WithPassword(s.Credentials.Password),
		)
	}

	// Port last: it must not be replaced by any TLS option.
	opts = append(opts, mail.WithPort(s.Port))

	c, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return c, nil
}

// Verify performs connect, greeting, TLS and AUTH, then quits.
func (t *Transport) Verify(ctx context.Context) error {
	c, err := t.client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, t.settings.Timeouts.Connect+t.settings.Timeouts.Greeting)
	defer cancel()

	if err := c.DialWithContext(ctx); err != nil {
		return classifyError(err)
	}
	if err := c.Close(); err != nil {
		return classifyError(err)
	}
	return nil
}

// Send delivers env and returns the bracketed Message-ID.
func (t *Transport) Send(ctx context.Context, env mailx.Envelope) (string, error) {
	m, id, err := buildMessage(env)
	if err != nil {
		return "", &mailx.TransportError{Class: mailx.ClassDelivery, Err: err}
	}

	c, err := t.client()
	if err != nil {
		return "", err
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return "", classifySendError(err)
	}
	return id, nil
}

func buildMessage(env mailx.Envelope) (*mail.Msg, string, error) {
	m := mail.NewMsg()
	if err := m.From(env.From); err != nil {
		return nil, "", fmt.Errorf("set from: %w", err)
	}
	if err := m.To(env.To...); err != nil {
		return nil, "", fmt.Errorf("set to: %w", err)
	}
	if len(env.Cc) > 0 {
		if err := m.Cc(env.Cc...); err != nil {
			return nil, "", fmt.Errorf("set cc: %w", err)
		}
	}
	if len(env.Bcc) > 0 {
		if err := m.Bcc(env.Bcc...); err != nil {
			return nil, "", fmt.Errorf("set bcc: %w", err)
		}
	}
	m.Subject(env.Subject)

	switch {
	case env.Text != "" && env.HTML != "":
		m.SetBodyString(mail.TypeTextPlain, env.Text)
		m.AddAlternativeString(mail.TypeTextHTML, env.HTML)
	case env.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, env.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, env.Text)
	}

	id := messageID(env.From)
	m.SetMessageIDWithValue(id)
	return m, "<" + id + ">", nil
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.Trim(from[at+1:], "> ")
	}
	return uuid.NewString() + "@" + domain
}

// classifyError turns go-mail dial failures into transport errors. go-mail
// reports a missing or unsupported AUTH mechanism as a plain error.
func classifyError(err error) *mailx.TransportError {
	te := mailx.NewTransportError(err)
	if te.Class == mailx.ClassDelivery && strings.Contains(err.Error(), "SMTP AUTH") {
		te.Class = mailx.ClassAuthentication
	}
	return te
}

// classifySendError also treats a failed connection check as a connection
// error: the session never got as far as a command.
func classifySendError(err error) error {
	te := classifyError(err)
	var sendErr *mail.SendError
	if te.Class == mailx.ClassDelivery && errors.As(err, &sendErr) && sendErr.Reason == mail.ErrConnCheck {
		te.Class = mailx.ClassConnection
	}
	return te
}
