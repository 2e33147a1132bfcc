package middleware

import (
	"net/http"
	"testing"

	"go-catalog-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var testSecret = []byte("test-secret")

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthGate(testSecret, PublicRoutes("/api/v1")))

	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/api/v1/products", ok)
	app.Get("/api/v1/products/:id", ok)
	app.Post("/api/v1/products", ok)
	app.Delete("/api/v1/products/:id", ok)
	app.Get("/api/v1/categories", ok)
	app.Post("/api/v1/users/login", ok)
	app.Post("/api/v1/users/register", ok)
	app.Get("/api/v1/users", ok)
	app.Get("/public/uploads/pic.png", ok)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestPublicSurfaceNeedsNoToken(t *testing.T) {
	app := newGatedApp()

	public := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/products"},
		{http.MethodGet, "/api/v1/products/" + uuid.NewString()},
		{http.MethodGet, "/api/v1/categories"},
		{http.MethodPost, "/api/v1/users/login"},
		{http.MethodPost, "/api/v1/users/register"},
		{http.MethodGet, "/public/uploads/pic.png"},
	}
	for _, route := range public {
		if code := do(t, app, route.method, route.path, ""); code != http.StatusOK {
			t.Errorf("%s %s without token: expected 200, got %d", route.method, route.path, code)
		}
	}
}

func TestWriteSurfaceRequiresToken(t *testing.T) {
	app := newGatedApp()

	protected := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/products"},
		{http.MethodDelete, "/api/v1/products/" + uuid.NewString()},
		{http.MethodGet, "/api/v1/users"},
	}
	for _, route := range protected {
		if code := do(t, app, route.method, route.path, ""); code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", route.method, route.path, code)
		}
		if code := do(t, app, route.method, route.path, "garbage"); code != http.StatusUnauthorized {
			t.Errorf("%s %s with bad token: expected 401, got %d", route.method, route.path, code)
		}
	}
}

func TestValidTokenPassesGate(t *testing.T) {
	app := newGatedApp()

	token, err := jwt.GenerateToken(testSecret, uuid.New(), "ada@example.com", true)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if code := do(t, app, http.MethodPost, "/api/v1/products", token); code != http.StatusOK {
		t.Errorf("with valid token: expected 200, got %d", code)
	}

	// A token signed with a different secret is rejected
	foreign, err := jwt.GenerateToken([]byte("other-secret"), uuid.New(), "eve@example.com", true)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if code := do(t, app, http.MethodPost, "/api/v1/products", foreign); code != http.StatusUnauthorized {
		t.Errorf("foreign token: expected 401, got %d", code)
	}
}
