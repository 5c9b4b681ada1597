package mailx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/logx"
)

// Verifier checks a handle before delivery. A TLS negotiation failure on
// per-user settings gets exactly one retry with the opposite TLS choice.
type Verifier struct {
	builder *Builder
}

func NewVerifier(builder *Builder) *Verifier {
	return &Verifier{builder: builder}
}

// VerifyWithFallback returns the handle that must be used for delivery:
// the original one, or the alternate one when the retry succeeded.
func (v *Verifier) VerifyWithFallback(ctx context.Context, handle *Handle, res Resolution) (*Handle, error) {
	settings := handle.Settings
	fields := logx.Fields{
		"host": settings.Host,
		"port": settings.Port,
		"mode": settings.Mode.String(),
	}

	err := handle.Transport.Verify(ctx)
	if err == nil {
		logx.WithFields(fields).Debug("SMTP connection verified")
		return handle, nil
	}

	class := Classify(err)
	logx.WithFields(fields).WithField("class", class.String()).WithError(err).Warn("SMTP verification failed")

	if class != ClassTLSNegotiation || !res.FromUserSettings {
		return nil, classifiedError(err, ErrVerifyFailed)
	}

	alternate, buildErr := v.builder.BuildAlternate(res.Config)
	if buildErr != nil {
		return nil, buildErr
	}
	logx.WithFields(fields).WithField("alternate_mode", alternate.Settings.Mode.String()).
		Info("Retrying SMTP verification with alternate security setting")

	altErr := alternate.Transport.Verify(ctx)
	if altErr == nil {
		logx.WithFields(fields).Info("Alternate SMTP security setting verified")
		return alternate, nil
	}

	logx.WithFields(fields).WithError(altErr).Error("Alternate SMTP verification also failed")
	return nil, fallbackError(settings.Port, err, altErr)
}

// FallbackSuggestion returns the operator hint for a failed fallback,
// keyed on the originally attempted port.
func FallbackSuggestion(port int) string {
	if port == 465 {
		return "Try port 587 with SSL/TLS unchecked, or verify your SMTP server supports SSL on port 465."
	}
	return "Try port 465 with SSL/TLS checked, or verify your SMTP server supports STARTTLS on port 587."
}

func fallbackError(port int, original, alternate error) *errx.Error {
	return mailErrors.NewWithCause(ErrFallbackFailed, alternate).
		WithDetail("details", fmt.Sprintf("Original error: %s. Tried alternative: %s", original.Error(), alternate.Error())).
		WithDetail("original_error", original.Error()).
		WithDetail("alternate_error", alternate.Error()).
		WithDetail("suggestion", FallbackSuggestion(port)).
		WithDetail("class", ClassTLSNegotiation.String())
}
