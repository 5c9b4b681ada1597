package smtpsettings

import (
	"net/http"

	"github.com/Abraxas-365/mailer/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SMTP_SETTINGS")

var (
	CodeUserIDRequired = ErrRegistry.Register("USER_ID_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "User ID is required")
	CodeInvalid        = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "userId, host, port, user, and password are required")
	CodeNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "SMTP settings not found")
	CodeStoreFailed    = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save SMTP settings")
)

func ErrUserIDRequired() *errx.Error { return ErrRegistry.New(CodeUserIDRequired) }
func ErrNotFound() *errx.Error       { return ErrRegistry.New(CodeNotFound) }
func ErrStoreFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreFailed, err).WithDetail("details", err.Error())
}
