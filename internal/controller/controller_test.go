package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickchat-be/internal/config"
	"quickchat-be/internal/controller"
	"quickchat-be/internal/pkg/serverutils"
	"quickchat-be/internal/repository/memory"
	"quickchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// newTestApp wires the full route surface against in-memory repositories.
func newTestApp() *fiber.App {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			ExpiryHours: 1,
			CookieName:  "jwt",
		},
	}

	userRepo := memory.NewUserRepository()
	sessionRepo := memory.NewChatSessionRepository()

	authService := service.NewAuthService(userRepo, cfg, nil)
	chatService := service.NewChatService(sessionRepo, nil)

	authMW := serverutils.NewAuthMiddleware(authService, cfg.Auth.CookieName, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	controller.NewAuthController(authService, cfg.Auth.CookieName).RegisterRoutes(api, authMW)
	controller.NewChatController(chatService).RegisterRoutes(api, authMW)

	return app
}

func jsonRequest(method, target string, payload interface{}, cookie string) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: cookie})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerUser creates an account and returns the session cookie value.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register", map[string]string{
		"full_name": name,
		"email":     email,
		"password":  "password123",
	}, ""), -1)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "jwt" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("register response did not set the jwt cookie")
	return ""
}
