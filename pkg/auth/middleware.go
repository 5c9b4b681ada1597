package auth

import (
	"strings"

	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware guards routes with a bearer credential.
type TokenMiddleware struct {
	verifier CredentialVerifier
}

func NewAuthMiddleware(verifier CredentialVerifier) *TokenMiddleware {
	return &TokenMiddleware{verifier: verifier}
}

// Authenticate requires "Authorization: Bearer <token>" and stores the
// resulting *kernel.AuthContext in Locals.
func (am *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return ErrUnauthorized()
		}

		authContext, err := am.verifier.Verify(c.UserContext(), token)
		if err != nil {
			return ErrUnauthorized()
		}

		c.Locals(kernel.AuthContextKey, authContext)
		return c.Next()
	}
}

// GetAuthContext returns the context stored by Authenticate.
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals(kernel.AuthContextKey).(*kernel.AuthContext)
	return authContext, ok && authContext.IsValid()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
