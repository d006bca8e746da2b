package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	apphttp "github.com/jhoicas/dental-clinic-api/internal/interfaces/http"
)

type permissionCheckerMock struct {
	mock.Mock
}

func (m *permissionCheckerMock) CheckPermission(ctx context.Context, userID string, companyID int64, module string, action entity.Action) (bool, error) {
	args := m.Called(ctx, userID, companyID, module, action)
	return args.Bool(0), args.Error(1)
}

const testCompany int64 = 10

// buildPermApp simula el gate dejando un TenantContext fijo en Locals.
func buildPermApp(checker apphttp.PermissionChecker) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.Identify(testJWTSecret))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalTenant, entity.TenantContext{UserID: testUserID, CompanyID: testCompany})
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/cierres-caja/:id/pdf", apphttp.RequirePermission(entity.ModuleCashClosures, entity.ActionExport, checker), ok)
	mod := apphttp.RequireModule(entity.ModulePatients, checker)
	app.Get("/pacientes", mod, ok)
	app.Post("/pacientes", mod, ok)
	app.Put("/pacientes/:id", mod, ok)
	app.Patch("/pacientes/:id", mod, ok)
	app.Delete("/pacientes/:id", mod, ok)
	return app
}

func doMethod(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequirePermission_Permitido(t *testing.T) {
	checker := new(permissionCheckerMock)
	checker.On("CheckPermission", mock.Anything, testUserID, testCompany, entity.ModuleCashClosures, entity.ActionExport).Return(true, nil)

	resp := doMethod(t, buildPermApp(checker), http.MethodGet, "/cierres-caja/abc/pdf")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	checker.AssertExpectations(t)
}

func TestRequirePermission_Denegado403(t *testing.T) {
	checker := new(permissionCheckerMock)
	checker.On("CheckPermission", mock.Anything, testUserID, testCompany, entity.ModuleCashClosures, entity.ActionExport).Return(false, nil)

	resp := doMethod(t, buildPermApp(checker), http.MethodGet, "/cierres-caja/abc/pdf")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "PERMISSION_DENIED")
}

func TestRequirePermission_FalloDB503(t *testing.T) {
	checker := new(permissionCheckerMock)
	checker.On("CheckPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("timeout"))

	resp := doMethod(t, buildPermApp(checker), http.MethodGet, "/cierres-caja/abc/pdf")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "PERMISSION_CHECK_FAILED")
}

func TestRequireModule_AccionSegunMetodo(t *testing.T) {
	cases := []struct {
		method string
		path   string
		action entity.Action
	}{
		{http.MethodGet, "/pacientes", entity.ActionView},
		{http.MethodPost, "/pacientes", entity.ActionCreate},
		{http.MethodPut, "/pacientes/1", entity.ActionEdit},
		{http.MethodPatch, "/pacientes/1", entity.ActionEdit},
		{http.MethodDelete, "/pacientes/1", entity.ActionDelete},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			checker := new(permissionCheckerMock)
			checker.On("CheckPermission", mock.Anything, testUserID, testCompany, entity.ModulePatients, tc.action).Return(true, nil)

			resp := doMethod(t, buildPermApp(checker), tc.method, tc.path)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			checker.AssertExpectations(t)
		})
	}
}

func TestRequirePermission_SinTenant403(t *testing.T) {
	checker := new(permissionCheckerMock)
	app := fiber.New()
	app.Use(apphttp.Identify(testJWTSecret))
	app.Get("/x", apphttp.RequirePermission(entity.ModulePatients, entity.ActionView, checker), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := doMethod(t, app, http.MethodGet, "/x")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	checker.AssertNotCalled(t, "CheckPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
