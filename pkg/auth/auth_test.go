package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/users"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	user *users.Public
	err  error
}

func (s stubUsers) CheckCredentials(_ context.Context, username, password string) (*users.Public, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.Username == username && password == "pw" {
		return s.user, nil
	}
	return nil, nil
}

var admin = AdminCredentials{Username: "admin", Password: "admin123"}

func newTestApp(checker UserChecker) *fiber.App {
	verifier := NewStaticTokenVerifier("authenticated")
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error { return errx.WriteFiber(c, err) },
	})
	NewAuthHandlers(NewAuthService(verifier, admin, checker), verifier).RegisterRoutes(app)

	mw := NewAuthMiddleware(verifier)
	app.Get("/protected", mw.Authenticate(), func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return errors.New("missing auth context")
		}
		return c.JSON(fiber.Map{"subject": ac.Subject})
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, auth, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp(nil)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer authenticated", 200},
		{"missing", "", 401},
		{"wrong token", "Bearer nope", 401},
		{"wrong scheme", "Basic authenticated", 401},
		{"no token", "Bearer ", 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, "GET", "/protected", tt.header, "")
			assert.Equal(t, tt.want, status)
			if tt.want == 401 {
				assert.Equal(t, "Unauthorized. Please login first.", body["error"])
				assert.Equal(t, false, body["success"])
			} else {
				assert.Equal(t, "static-token", body["subject"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	id := kernel.UserID("u-1")
	app := newTestApp(stubUsers{user: &users.Public{ID: id, Username: "ada"}})

	status, body := do(t, app, "POST", "/api/auth/login", "", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["isAdmin"])
	assert.Equal(t, "authenticated", body["token"])
	_, hasUser := body["userId"]
	assert.False(t, hasUser)

	status, body = do(t, app, "POST", "/api/auth/login", "", `{"username":"ada","password":"pw"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["isAdmin"])
	assert.Equal(t, "u-1", body["userId"])

	status, body = do(t, app, "POST", "/api/auth/login", "", `{"username":"ada","password":"bad"}`)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Invalid username or password", body["error"])

	status, body = do(t, app, "POST", "/api/auth/login", "", `{"username":"ada"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Username and password are required", body["error"])
}

func TestLoginStoreFailure(t *testing.T) {
	app := newTestApp(stubUsers{err: errors.New("store down")})

	status, body := do(t, app, "POST", "/api/auth/login", "", `{"username":"ada","password":"pw"}`)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Login failed", body["error"])
}

func TestLogoutAndVerify(t *testing.T) {
	app := newTestApp(nil)

	status, body := do(t, app, "POST", "/api/auth/logout", "", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Logout successful", body["message"])

	status, body = do(t, app, "GET", "/api/auth/verify", "Bearer authenticated", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["authenticated"])

	status, body = do(t, app, "GET", "/api/auth/verify", "Bearer stale", "")
	assert.Equal(t, 401, status)
	assert.Equal(t, false, body["authenticated"])
}
