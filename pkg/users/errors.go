package users

import (
	"net/http"

	"github.com/Abraxas-365/mailer/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeInvalid       = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Username and password are required")
	CodeUsernameTaken = ErrRegistry.Register("USERNAME_TAKEN", errx.TypeValidation, http.StatusBadRequest, "Username already exists")
	CodeNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeStoreFailed   = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save user")
)

func ErrUsernameTaken() *errx.Error { return ErrRegistry.New(CodeUsernameTaken) }
func ErrNotFound() *errx.Error      { return ErrRegistry.New(CodeNotFound) }
func ErrStoreFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreFailed, err).WithDetail("details", err.Error())
}
