package auth

import (
	"github.com/gofiber/fiber/v2"
)

type AuthHandlers struct {
	service  *AuthService
	verifier CredentialVerifier
}

func NewAuthHandlers(service *AuthService, verifier CredentialVerifier) *AuthHandlers {
	return &AuthHandlers{service: service, verifier: verifier}
}

// RegisterRoutes mounts the unauthenticated /api/auth routes.
func (h *AuthHandlers) RegisterRoutes(router fiber.Router) {
	g := router.Group("/api/auth")
	g.Post("/login", h.Login)
	g.Post("/logout", h.Logout)
	g.Get("/verify", h.Verify)
}

func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrMissingCredentials().WithDetail("details", err.Error())
	}

	result, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"isAdmin": result.IsAdmin,
	}
	if result.UserID != nil {
		resp["userId"] = result.UserID.String()
	}
	return c.JSON(resp)
}

// Logout is stateless: the client discards its token.
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "message": "Logout successful"})
}

func (h *AuthHandlers) Verify(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if ok {
		if _, err := h.verifier.Verify(c.UserContext(), token); err == nil {
			return c.JSON(fiber.Map{"success": true, "authenticated": true})
		}
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "authenticated": false})
}
