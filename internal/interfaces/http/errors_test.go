package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
)

func TestRespondError_MapeoDeSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&dto.ValidationError{Fields: map[string]string{"name": "campo obligatorio"}}, fiber.StatusBadRequest},
		{fmt.Errorf("sucursal: %w", domain.ErrBranchOutOfCompany), fiber.StatusBadRequest},
		{domain.ErrInvalidInput, fiber.StatusBadRequest},
		{fmt.Errorf("paciente: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrDuplicate, fiber.StatusConflict},
		{domain.ErrConflict, fiber.StatusConflict},
		{domain.ErrPermissionDenied, fiber.StatusForbidden},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrTenantUnresolved, fiber.StatusFound},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })

		resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, reqErr)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
	}
}
