package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// bindBody parsea el cuerpo (JSON o formulario) y valida los tags.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return dto.Validate(out)
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, name)
	}
	return n, nil
}

// page lee limit/offset con los mismos límites que PageRequest.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// queryDate lee un parámetro YYYY-MM-DD. hasta se vuelve exclusivo sumando un día.
func queryDate(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato AAAA-MM-DD", domain.ErrInvalidInput, name)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// tenantOf devuelve el contexto dejado por el gate. Las rutas de dominio siempre van detrás del gate.
func tenantOf(c *fiber.Ctx) (entity.TenantContext, error) {
	tc, ok := GetTenant(c)
	if !ok {
		return tc, domain.ErrTenantUnresolved
	}
	return tc, nil
}
