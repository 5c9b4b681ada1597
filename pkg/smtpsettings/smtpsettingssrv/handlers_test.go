package smtpsettingssrv

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	svc, _ := newTestService(t)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error { return errx.WriteFiber(c, err) },
	})
	NewSettingsHandlers(svc).RegisterRoutes(app, func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestSettingsRoutes(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, "GET", "/api/smtp", "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "User ID is required", body["error"])

	status, body = call(t, app, "GET", "/api/smtp?userId=u1", "")
	assert.Equal(t, 200, status)
	assert.Nil(t, body["settings"])
	assert.Equal(t, "No SMTP settings found for this user", body["message"])

	payload := `{"userId":"u1","host":"smtp.example.com","port":"587","user":"me@example.com","password":"pw"}`
	status, body = call(t, app, "POST", "/api/smtp", payload)
	assert.Equal(t, 200, status)
	assert.Equal(t, "SMTP settings saved successfully", body["message"])
	settings := body["settings"].(map[string]any)
	assert.EqualValues(t, 587, settings["port"])
	assert.Equal(t, true, settings["secure"])
	_, hasPassword := settings["password"]
	assert.False(t, hasPassword)

	status, body = call(t, app, "POST", "/api/smtp", payload)
	assert.Equal(t, 200, status)
	assert.Equal(t, "SMTP settings updated successfully", body["message"])

	status, body = call(t, app, "GET", "/api/smtp?userId=u1", "")
	assert.Equal(t, 200, status)
	settings = body["settings"].(map[string]any)
	assert.Equal(t, "smtp.example.com", settings["host"])
	_, hasPassword = settings["password"]
	assert.False(t, hasPassword)

	status, _ = call(t, app, "DELETE", "/api/smtp/u1", "")
	assert.Equal(t, 200, status)

	status, body = call(t, app, "DELETE", "/api/smtp/u1", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "SMTP settings not found", body["error"])
}

func TestSaveRouteRejectsMissingFields(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, "POST", "/api/smtp", `{"userId":"u1","host":"smtp.example.com"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "userId, host, port, user, and password are required", body["error"])
}
