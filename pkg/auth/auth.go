// Package auth is the bearer-token gate in front of the API and the login
// endpoints that hand the token out.
package auth

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/users"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized       = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized. Please login first.")
	CodeMissingCredentials = ErrRegistry.Register("MISSING_CREDENTIALS", errx.TypeValidation, http.StatusBadRequest, "Username and password are required")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid username or password")
	CodeLoginFailed        = ErrRegistry.Register("LOGIN_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Login failed")
)

func ErrUnauthorized() *errx.Error       { return ErrRegistry.New(CodeUnauthorized) }
func ErrMissingCredentials() *errx.Error { return ErrRegistry.New(CodeMissingCredentials) }
func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }

// CredentialVerifier accepts or rejects a bearer credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (*kernel.AuthContext, error)
}

// TokenIssuer hands out the credential a successful login returns.
type TokenIssuer interface {
	Issue(ctx context.Context, subject string, userID *kernel.UserID) (string, error)
}

// StaticTokenVerifier accepts exactly one configured token and issues that
// same token on login. Tokens do not expire.
type StaticTokenVerifier struct {
	token string
}

func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{token: token}
}

func (v *StaticTokenVerifier) Verify(_ context.Context, token string) (*kernel.AuthContext, error) {
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return nil, ErrUnauthorized()
	}
	return &kernel.AuthContext{Subject: "static-token", Scheme: "Bearer"}, nil
}

func (v *StaticTokenVerifier) Issue(_ context.Context, _ string, _ *kernel.UserID) (string, error) {
	return v.token, nil
}

// UserChecker matches login credentials against stored users.
type UserChecker interface {
	CheckCredentials(ctx context.Context, username, password string) (*users.Public, error)
}

// AdminCredentials is the built-in administrator login.
type AdminCredentials struct {
	Username string
	Password string
}

func (a AdminCredentials) matches(username, password string) bool {
	if a.Username == "" {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password))
	return u&p == 1
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token   string         `json:"token"`
	IsAdmin bool           `json:"isAdmin"`
	UserID  *kernel.UserID `json:"userId,omitempty"`
}
