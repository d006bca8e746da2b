package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/dental-clinic-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/dental-clinic-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "clinica-dental-test"
	testExpMin    = 60
)

// buildAuthApp aplicación mínima: Identify + RequireAuth/RequireSuperuser + handler dummy.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.Identify(testJWTSecret))
	app.Get("/protected", apphttp.RequireAuth(), func(c *fiber.Ctx) error {
		id, _ := apphttp.GetIdentity(c)
		return c.SendString(id.UserID)
	})
	app.Get("/admin/x", apphttp.RequireAuth(), apphttp.RequireSuperuser(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/public", func(c *fiber.Ctx) error {
		_, ok := apphttp.GetIdentity(c)
		if ok {
			return c.SendString("identified")
		}
		return c.SendString("anonymous")
	})
	return app
}

func tokenFor(t *testing.T, superuser bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, superuser, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doGet(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func withBearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAuth_SinToken401(t *testing.T) {
	resp := doGet(t, buildAuthApp(), "/protected", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_BearerValido(t *testing.T) {
	resp := doGet(t, buildAuthApp(), "/protected", withBearer(tokenFor(t, false)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, bodyString(t, resp))
}

func TestRequireAuth_CookieValida(t *testing.T) {
	tok := tokenFor(t, false)
	resp := doGet(t, buildAuthApp(), "/protected", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.AuthCookieName, Value: tok})
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuth_TokenDeOtroSecret401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testUserID, false, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doGet(t, buildAuthApp(), "/protected", withBearer(tok))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_TokenExpirado401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, false, testIssuer, -1)
	require.NoError(t, err)
	resp := doGet(t, buildAuthApp(), "/protected", withBearer(tok))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIdentify_TokenInvalidoNoBloqueaRutasPublicas(t *testing.T) {
	resp := doGet(t, buildAuthApp(), "/public", withBearer("basura"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", bodyString(t, resp))
}

func TestRequireSuperuser(t *testing.T) {
	app := buildAuthApp()

	resp := doGet(t, app, "/admin/x", withBearer(tokenFor(t, false)))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doGet(t, app, "/admin/x", withBearer(tokenFor(t, true)))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
