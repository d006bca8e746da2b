package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	apphttp "github.com/jhoicas/dental-clinic-api/internal/interfaces/http"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) Resolve(ctx context.Context, userID string, sess tenant.SessionState) (entity.TenantContext, error) {
	args := m.Called(ctx, userID, sess)
	return args.Get(0).(entity.TenantContext), args.Error(1)
}

func buildGateApp(resolver *resolverMock) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.Identify(testJWTSecret))
	app.Use(apphttp.NewTenantGate(resolver, session.New(), nil, nil).Handler())
	app.Get("/*", func(c *fiber.Ctx) error {
		if tc, ok := apphttp.GetTenant(c); ok {
			c.Set("X-Company", strconv.FormatInt(tc.CompanyID, 10))
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestIsExempt(t *testing.T) {
	cases := map[string]bool{
		"/static/x.css":          true,
		"/media/rx/1.png":        true,
		"/favicon.ico":           true,
		"/login/":                true,
		"/login":                 true,
		"/logout/":               true,
		"/seleccionar-empresa/":  true,
		"/seleccionar-empresa":   true,
		"/empresas/":             true,
		"/admin/empresas":        true,
		"/pacientes/":            false,
		"/citas":                 false,
		"/staticfoo":             false,
		"/contexto":              false,
		"/seleccionar-sucursal/": false,
	}
	for path, want := range cases {
		assert.Equal(t, want, apphttp.IsExempt(path), path)
	}
}

func TestGate_NuncaRedirigeEstaticos(t *testing.T) {
	resolver := new(resolverMock)
	app := buildGateApp(resolver)

	resp := doGet(t, app, "/static/x.css", withBearer(tokenFor(t, false)))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_SinEmpresaRedirigeASeleccion(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Return(entity.TenantContext{UserID: testUserID}, domain.ErrTenantUnresolved)
	app := buildGateApp(resolver)

	for _, path := range []string{"/pacientes/", "/citas", "/dashboard"} {
		resp := doGet(t, app, path, withBearer(tokenFor(t, false)))
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, apphttp.SelectCompanyPath, resp.Header.Get("Location"), path)
	}
}

func TestGate_AnonimoPasaSinResolver(t *testing.T) {
	resolver := new(resolverMock)
	app := buildGateApp(resolver)

	resp := doGet(t, app, "/pacientes/", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_ResuelveYDejaContexto(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Return(entity.TenantContext{UserID: testUserID, CompanyID: 7}, nil)
	app := buildGateApp(resolver)

	resp := doGet(t, app, "/pacientes/", withBearer(tokenFor(t, false)))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "7", resp.Header.Get("X-Company"))
	resolver.AssertExpectations(t)
}

func TestGate_ErrorInfraestructura500(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Return(entity.TenantContext{}, errors.New("db caída"))
	app := buildGateApp(resolver)

	resp := doGet(t, app, "/pacientes/", withBearer(tokenFor(t, false)))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "TENANT_RESOLUTION_FAILED")
}

// La sesión persiste entre requests vía cookie: el resolver recibe el estado guardado.
func TestGate_GuardaSesion(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Run(func(args mock.Arguments) {
			sess := args.Get(2).(tenant.SessionState)
			if _, ok := sess.CompanyID(); !ok {
				sess.SetCompanyID(3)
			}
		}).
		Return(entity.TenantContext{UserID: testUserID, CompanyID: 3}, nil)
	app := buildGateApp(resolver)

	first := doGet(t, app, "/pacientes/", withBearer(tokenFor(t, false)))
	cookies := first.Cookies()
	assert.NotEmpty(t, cookies, "el gate debe emitir la cookie de sesión")

	var seen int64
	resolver.ExpectedCalls = nil
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Run(func(args mock.Arguments) {
			seen, _ = args.Get(2).(tenant.SessionState).CompanyID()
		}).
		Return(entity.TenantContext{UserID: testUserID, CompanyID: 3}, nil)

	doGet(t, app, "/citas", func(r *http.Request) {
		withBearer(tokenFor(t, false))(r)
		for _, c := range cookies {
			r.AddCookie(c)
		}
	})
	assert.Equal(t, int64(3), seen)
}

// storageCaido acepta lecturas y rechaza escrituras de sesión.
type storageCaido struct{}

func (storageCaido) Get(string) ([]byte, error)              { return nil, nil }
func (storageCaido) Set(string, []byte, time.Duration) error { return errors.New("redis caído") }
func (storageCaido) Delete(string) error                     { return nil }
func (storageCaido) Reset() error                            { return nil }
func (storageCaido) Close() error                            { return nil }

func TestGate_RedireccionRegistraFalloDeSesion(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, testUserID, mock.Anything).
		Return(entity.TenantContext{UserID: testUserID}, domain.ErrTenantUnresolved)

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	app := fiber.New()
	app.Use(apphttp.Identify(testJWTSecret))
	app.Use(apphttp.NewTenantGate(resolver, session.New(session.Config{Storage: storageCaido{}}), log, nil).Handler())
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doGet(t, app, "/pacientes/", withBearer(tokenFor(t, false)))

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, buf.String(), "redis caído")
	assert.Contains(t, buf.String(), testUserID)
}
