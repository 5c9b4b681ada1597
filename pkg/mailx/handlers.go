package mailx

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the mail service over HTTP.
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /api/email behind authMiddleware.
func (h *Handlers) RegisterRoutes(router fiber.Router, authMiddleware fiber.Handler) {
	email := router.Group("/api/email", authMiddleware)
	email.Post("/send", h.Send)
	email.Post("/send-bulk", h.SendBulk)
}

func (h *Handlers) Send(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError("Invalid request body").WithDetail("details", err.Error())
	}

	receipt, err := h.service.SendOne(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Email sent successfully",
		"messageId": receipt.MessageID,
	})
}

func (h *Handlers) SendBulk(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError("Invalid request body").WithDetail("details", err.Error())
	}

	result, err := h.service.SendBulk(c.UserContext(), req)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"success":     true,
		"message":     fmt.Sprintf("Sent %d emails successfully, %d failed", result.Sent, result.Failed),
		"sentCount":   result.Sent,
		"failedCount": result.Failed,
		"results":     result.Succeeded(),
	}
	if result.Failed > 0 {
		resp["errors"] = result.Failures()
	}
	return c.JSON(resp)
}
