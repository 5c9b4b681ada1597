package userssrv

import (
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/users"
	"github.com/gofiber/fiber/v2"
)

type UserHandlers struct {
	service *UserService
}

func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts /api/users behind authMiddleware.
func (h *UserHandlers) RegisterRoutes(router fiber.Router, authMiddleware fiber.Handler) {
	g := router.Group("/api/users", authMiddleware)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func userID(c *fiber.Ctx) kernel.UserID {
	return kernel.NewUserID(c.Params("id"))
}

func (h *UserHandlers) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "users": list})
}

func (h *UserHandlers) Get(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

func (h *UserHandlers) Create(c *fiber.Ctx) error {
	var req users.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return users.ErrRegistry.New(users.CodeInvalid).WithDetail("details", err.Error())
	}
	u, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"user":    u,
	})
}

func (h *UserHandlers) Update(c *fiber.Ctx) error {
	var req users.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return users.ErrRegistry.New(users.CodeInvalid).WithDetail("details", err.Error())
	}
	u, err := h.service.Update(c.UserContext(), userID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    u,
	})
}

func (h *UserHandlers) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), userID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}
