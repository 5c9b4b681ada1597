package mailx

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/textproto"

	"github.com/Abraxas-365/mailer/pkg/errx"
)

var mailErrors = errx.NewRegistry("MAILX")

var (
	ErrValidation     = mailErrors.Register("VALIDATION", errx.TypeValidation, 400, "Invalid email request")
	ErrAuthentication = mailErrors.Register("AUTHENTICATION", errx.TypeExternal, 500, "SMTP authentication failed. Please check your username and password.")
	ErrConnection     = mailErrors.Register("CONNECTION", errx.TypeExternal, 500, "Could not connect to SMTP server. Please check your host and port.")
	ErrTLSNegotiation = mailErrors.Register("TLS_NEGOTIATION", errx.TypeExternal, 500, "SMTP connection error. Please check your port and secure settings. Port 465 requires SSL (secure: true), port 587 requires STARTTLS (secure: false).")
	ErrDelivery       = mailErrors.Register("DELIVERY", errx.TypeExternal, 500, "Failed to send email")
	ErrVerifyFailed   = mailErrors.Register("VERIFY_FAILED", errx.TypeExternal, 500, "SMTP connection failed. Please check your SMTP settings.")
	ErrFallbackFailed = mailErrors.Register("FALLBACK_FAILED", errx.TypeExternal, 500, "SMTP connection failed. The server may not support the selected port/SSL combination.")
	ErrTransportSetup = mailErrors.Register("TRANSPORT_SETUP", errx.TypeInternal, 500, "Failed to configure mail transport")
)

func validationError(message string) *errx.Error {
	return mailErrors.NewWithMessage(ErrValidation, message)
}

// ErrorClass buckets transport failures.
type ErrorClass int

const (
	// ClassDelivery is the catch-all.
	ClassDelivery ErrorClass = iota
	// ClassAuthentication means the server rejected the credentials.
	ClassAuthentication
	// ClassConnection means the host/port could not be reached or timed out.
	ClassConnection
	// ClassTLSNegotiation means the TLS handshake failed because the two
	// sides disagree on whether/how to speak TLS. Only this class is
	// eligible for the security fallback.
	ClassTLSNegotiation
)

func (c ErrorClass) String() string {
	switch c {
	case ClassAuthentication:
		return "authentication"
	case ClassConnection:
		return "connection"
	case ClassTLSNegotiation:
		return "tls_negotiation"
	default:
		return "delivery"
	}
}

// TransportError is produced by transport implementations so callers can
// branch on Class instead of matching error text.
type TransportError struct {
	Class ErrorClass
	Err   error
}

// NewTransportError classifies err structurally and wraps it.
func NewTransportError(err error) *TransportError {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	return &TransportError{Class: ClassifyCause(err), Err: err}
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Class.String() + " error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTLSNegotiation reports whether err belongs to the fallback-eligible class.
func IsTLSNegotiation(err error) bool {
	return Classify(err) == ClassTLSNegotiation
}

// Classify returns the class of err, honouring a TransportError in the chain.
func Classify(err error) ErrorClass {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Class
	}
	return ClassifyCause(err)
}

const alertProtocolVersion tls.AlertError = 70

// ClassifyCause inspects the concrete error types returned by crypto/tls,
// net and net/textproto.
func ClassifyCause(err error) ErrorClass {
	if err == nil {
		return ClassDelivery
	}

	// A plaintext greeting read as a TLS record (implicit TLS against a
	// STARTTLS/plain port) surfaces as a RecordHeaderError.
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return ClassTLSNegotiation
	}
	var alert tls.AlertError
	if errors.As(err, &alert) && alert == alertProtocolVersion {
		return ClassTLSNegotiation
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return ClassAuthentication
		}
		return ClassDelivery
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassConnection
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ClassConnection
	}

	return ClassDelivery
}

// classifiedError maps a transport failure onto the registered code of its class.
func classifiedError(err error, unclassified *errx.ErrorCode) *errx.Error {
	code := unclassified
	switch Classify(err) {
	case ClassAuthentication:
		code = ErrAuthentication
	case ClassConnection:
		code = ErrConnection
	case ClassTLSNegotiation:
		code = ErrTLSNegotiation
	}
	return mailErrors.NewWithCause(code, err).
		WithDetail("details", err.Error()).
		WithDetail("class", Classify(err).String())
}
