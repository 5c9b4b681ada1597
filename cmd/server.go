package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// newApp builds the fiber app with every route registered.
func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Mailer API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  container.Config.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health", healthCheckHandler)

	mw := container.AuthMiddleware.Authenticate()

	container.AuthHandlers.RegisterRoutes(app)
	container.MailHandlers.RegisterRoutes(app, mw)
	container.SettingsHandlers.RegisterRoutes(app, mw)
	container.TemplateHandlers.RegisterRoutes(app, mw)
	container.UserHandlers.RegisterRoutes(app, mw)

	registerFrontend(app, container.Config.Server.FrontendDir)

	app.Use(notFoundHandler)

	return app
}

func healthCheckHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Email API is running",
	})
}

// registerFrontend serves the admin UI. A missing directory only disables it.
func registerFrontend(app *fiber.App, dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		logx.Warnf("Frontend directory %s not available, static files disabled", dir)
		return
	}

	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(dir, "admin.html"))
	})
	app.Static("/", dir, fiber.Static{Index: "index.html"})
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success":    false,
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

// globalErrorHandler logs the failure and writes the standard error envelope.
func globalErrorHandler(c *fiber.Ctx, err error) error {
	entry := logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"ip":         c.IP(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})

	var e *errx.Error
	if errx.As(err, &e) && e.HTTPStatus < fiber.StatusInternalServerError {
		entry.Warnf("Request rejected: %v", err)
	} else {
		entry.Errorf("Request error: %v", err)
	}

	return errx.WriteFiber(c, err)
}

func runServer(container *Container) error {
	app := newApp(container)
	port := container.Config.Server.Port

	errCh := make(chan error, 1)
	go func() {
		logx.Info(strings.Repeat("=", 60))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Infof("📧 Email API: http://localhost:%s/api/email/send", port)
		logx.Info(strings.Repeat("=", 60))

		errCh <- app.Listen(":" + port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		logx.Infof("🛑 Received signal: %v", sig)
	}

	logx.Info("Shutting down gracefully...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("✅ Server exited successfully")
	return nil
}
