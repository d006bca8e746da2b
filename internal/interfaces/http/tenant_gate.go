package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

// SelectCompanyPath destino del redirect cuando no hay empresa resoluble.
const SelectCompanyPath = "/seleccionar-empresa/"

// exemptPrefixes rutas que no pasan por la resolución de tenant.
var exemptPrefixes = []string{
	"/login/",
	"/logout/",
	SelectCompanyPath,
	"/empresas/",
	"/admin/",
	"/static/",
	"/media/",
	"/favicon.ico",
}

// IsExempt informa si la ruta está en la lista de exentas. Una ruta igual al prefijo
// sin su barra final también es exenta.
func IsExempt(path string) bool {
	for _, p := range exemptPrefixes {
		if strings.HasPrefix(path, p) || path == strings.TrimSuffix(p, "/") {
			return true
		}
	}
	return false
}

type tenantResolver interface {
	Resolve(ctx context.Context, userID string, sess tenant.SessionState) (entity.TenantContext, error)
}

// TenantGate resuelve la empresa y sucursal actuales para cada request autenticado.
type TenantGate struct {
	resolver tenantResolver
	store    *session.Store
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewTenantGate construye el gate.
func NewTenantGate(resolver tenantResolver, store *session.Store, log *logger.Logger, m *metrics.Metrics) *TenantGate {
	if log == nil {
		log = logger.Nop()
	}
	return &TenantGate{resolver: resolver, store: store, log: log.Named("gate"), metrics: m}
}

// Handler middleware Fiber. Anónimos y rutas exentas pasan sin resolver.
func (g *TenantGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok || IsExempt(c.Path()) {
			return c.Next()
		}

		sess, err := g.store.Get(c)
		if err != nil {
			g.log.Error().Err(err).Msg("no se pudo cargar la sesión")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION_UNAVAILABLE", Message: "sesión no disponible"})
		}

		tc, err := g.resolver.Resolve(c.UserContext(), id.UserID, sessionState{sess})
		if errors.Is(err, domain.ErrTenantUnresolved) {
			g.metrics.ObserveRedirect()
			if err := sess.Save(); err != nil {
				g.log.Warn().Err(err).Str("user_id", id.UserID).Msg("no se pudo guardar la sesión antes de redirigir")
			}
			return c.Redirect(SelectCompanyPath, fiber.StatusFound)
		}
		if err != nil {
			g.log.Error().Err(err).Str("user_id", id.UserID).Str("path", c.Path()).Msg("resolución de tenant fallida")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TENANT_RESOLUTION_FAILED", Message: "no se pudo determinar la empresa actual"})
		}
		if err := sess.Save(); err != nil {
			g.log.Warn().Err(err).Msg("no se pudo guardar la sesión")
		}

		c.Locals(LocalTenant, tc)
		return c.Next()
	}
}

// GetTenant devuelve el contexto de tenant calculado por el gate.
func GetTenant(c *fiber.Ctx) (entity.TenantContext, bool) {
	tc, ok := c.Locals(LocalTenant).(entity.TenantContext)
	return tc, ok && tc.CompanyID != 0
}
