package smtpsettingssrv

import (
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandlers struct {
	service *SettingsService
}

func NewSettingsHandlers(service *SettingsService) *SettingsHandlers {
	return &SettingsHandlers{service: service}
}

// RegisterRoutes mounts /api/smtp behind authMiddleware.
func (h *SettingsHandlers) RegisterRoutes(router fiber.Router, authMiddleware fiber.Handler) {
	smtp := router.Group("/api/smtp", authMiddleware)
	smtp.Get("/", h.Get)
	smtp.Post("/", h.Save)
	smtp.Delete("/:userId", h.Delete)
}

func (h *SettingsHandlers) Get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.UserContext(), kernel.UserID(c.Query("userId")))
	if err != nil {
		return err
	}
	if settings == nil {
		return c.JSON(fiber.Map{
			"success":  true,
			"settings": nil,
			"message":  "No SMTP settings found for this user",
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settings,
	})
}

func (h *SettingsHandlers) Save(c *fiber.Ctx) error {
	var req smtpsettings.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return smtpsettings.ErrRegistry.New(smtpsettings.CodeInvalid).WithDetail("details", err.Error())
	}

	settings, created, err := h.service.Save(c.UserContext(), req)
	if err != nil {
		return err
	}

	message := "SMTP settings updated successfully"
	if created {
		message = "SMTP settings saved successfully"
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"settings": settings,
	})
}

func (h *SettingsHandlers) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), kernel.UserID(c.Params("userId"))); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "SMTP settings deleted successfully",
	})
}
