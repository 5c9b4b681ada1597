package templatessrv

import (
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/templates"
	"github.com/gofiber/fiber/v2"
)

type TemplateHandlers struct {
	service *TemplateService
}

func NewTemplateHandlers(service *TemplateService) *TemplateHandlers {
	return &TemplateHandlers{service: service}
}

// RegisterRoutes mounts /api/templates behind authMiddleware.
func (h *TemplateHandlers) RegisterRoutes(router fiber.Router, authMiddleware fiber.Handler) {
	g := router.Group("/api/templates", authMiddleware)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func templateID(c *fiber.Ctx) kernel.TemplateID {
	return kernel.NewTemplateID(c.Params("id"))
}

func queryUser(c *fiber.Ctx) kernel.UserID {
	return kernel.NewUserID(c.Query("userId"))
}

func (h *TemplateHandlers) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext(), queryUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "templates": list})
}

func (h *TemplateHandlers) Get(c *fiber.Ctx) error {
	t, err := h.service.Get(c.UserContext(), templateID(c), queryUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "template": t})
}

func (h *TemplateHandlers) Create(c *fiber.Ctx) error {
	var req templates.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return templates.ErrNameRequired().WithDetail("details", err.Error())
	}
	t, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Template saved successfully",
		"template": t,
	})
}

func (h *TemplateHandlers) Update(c *fiber.Ctx) error {
	var req templates.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return templates.ErrNameRequired().WithDetail("details", err.Error())
	}
	t, err := h.service.Update(c.UserContext(), templateID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Template updated successfully",
		"template": t,
	})
}

func (h *TemplateHandlers) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), templateID(c), queryUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Template deleted successfully"})
}
