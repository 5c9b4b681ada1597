package mailx

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/logx"
)

// Sender delivers through a verified handle.
type Sender struct{}

func NewSender() *Sender { return &Sender{} }

// Send delivers one envelope. Failures are classified.
func (s *Sender) Send(ctx context.Context, handle *Handle, env Envelope) (*SendReceipt, error) {
	id, err := handle.Transport.Send(ctx, env)
	if err != nil {
		logx.WithFields(logx.Fields{
			"host":    handle.Settings.Host,
			"port":    handle.Settings.Port,
			"subject": env.Subject,
		}).WithError(err).Error("Failed to send email")
		return nil, classifiedError(err, ErrDelivery)
	}
	logx.WithFields(logx.Fields{
		"message_id": id,
		"recipients": len(env.To) + len(env.Cc) + len(env.Bcc),
	}).Info("Email sent")
	return &SendReceipt{MessageID: id}, nil
}

// SendBulk sends one message per recipient, sequentially and in order. A
// failed recipient is recorded and the loop continues.
func (s *Sender) SendBulk(ctx context.Context, handle *Handle, base Envelope, recipients []string) DeliveryResult {
	result := DeliveryResult{Results: make([]RecipientResult, 0, len(recipients))}

	for _, recipient := range recipients {
		env := base
		env.To = []string{recipient}
		env.Cc, env.Bcc = nil, nil

		id, err := handle.Transport.Send(ctx, env)
		if err != nil {
			logx.WithField("to", recipient).WithError(err).Warn("Bulk recipient failed")
			result.Results = append(result.Results, RecipientResult{Recipient: recipient, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Results = append(result.Results, RecipientResult{Recipient: recipient, Success: true, MessageID: id})
		result.Sent++
	}

	logx.WithFields(logx.Fields{
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("Bulk send finished")
	return result
}
