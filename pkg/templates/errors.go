package templates

import (
	"net/http"

	"github.com/Abraxas-365/mailer/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TEMPLATE")

var (
	CodeUserIDRequired  = ErrRegistry.Register("USER_ID_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "User ID is required")
	CodeNameRequired    = ErrRegistry.Register("NAME_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Template name and subject are required")
	CodeContentRequired = ErrRegistry.Register("CONTENT_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Template content (text or html) is required")
	CodeNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Template not found")
	CodeAccessDenied    = ErrRegistry.Register("ACCESS_DENIED", errx.TypeForbidden, http.StatusForbidden, "Access denied. This template does not belong to you.")
	CodeStoreFailed     = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save template")
)

func ErrUserIDRequired() *errx.Error  { return ErrRegistry.New(CodeUserIDRequired) }
func ErrNameRequired() *errx.Error    { return ErrRegistry.New(CodeNameRequired) }
func ErrContentRequired() *errx.Error { return ErrRegistry.New(CodeContentRequired) }
func ErrNotFound() *errx.Error        { return ErrRegistry.New(CodeNotFound) }
func ErrAccessDenied() *errx.Error    { return ErrRegistry.New(CodeAccessDenied) }
func ErrStoreFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreFailed, err).WithDetail("details", err.Error())
}
