package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	app.Get("/ws", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusSwitchingProtocols)
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	app := newApp()

	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "header", target: "/whoami", header: "alice", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "query", target: "/whoami?playerId=bob", wantStatus: http.StatusOK, wantBody: "bob"},
		{name: "header wins", target: "/whoami?playerId=bob", header: "alice", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "missing", target: "/whoami", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("X-Player-ID", "alice")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestEnsurePlayerIDOutlivesRequest(t *testing.T) {
	var seen []string
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/", func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusNoContent)
	})

	ids := []string{"alice", "bob", "zzzzzzzz", "qq"}
	for _, id := range ids {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Player-ID", id)
		_, err := app.Test(req)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodGet, "/?playerId=carol", nil)
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, append(ids, "carol"), seen)
}
