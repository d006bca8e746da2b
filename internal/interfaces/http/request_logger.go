package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

const localLogger = "logger"

// RequestLogger registra cada request (método, ruta, status, latencia, usuario y empresa)
// y deja el logger en Locals para los handlers.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	httpLog := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, httpLog)

		chainErr := c.Next()
		if chainErr != nil {
			// El error handler de Fiber aún no corrió; se calcula el status que tendrá.
			if fe, ok := chainErr.(*fiber.Error); ok {
				c.Status(fe.Code)
			} else {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		m.ObserveRequest(c.Method(), status)

		ev := httpLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = httpLog.Error().Err(chainErr)
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if id, ok := GetIdentity(c); ok {
			ev = ev.Str("user_id", id.UserID)
		}
		if tc, ok := GetTenant(c); ok {
			ev = ev.Int64("company_id", tc.CompanyID)
		}
		ev.Msg("request")
		return chainErr
	}
}

func requestLog(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
