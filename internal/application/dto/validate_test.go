package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
)

func TestValidate_CamposConNombreJSON(t *testing.T) {
	err := dto.Validate(dto.CreateCompanyRequest{LegalName: "", TaxID: "76.123.456-7", Email: "no-es-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *dto.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "campo obligatorio", ve.Fields["legal_name"])
	assert.Equal(t, "email inválido", ve.Fields["email"])
	assert.NotContains(t, ve.Fields, "tax_id")
}

func TestValidate_HorarioHHMM(t *testing.T) {
	ok := dto.SaveBranchRequest{Name: "Centro", OpensAt: "08:30", ClosesAt: "19:00"}
	assert.NoError(t, dto.Validate(ok))

	bad := dto.SaveBranchRequest{Name: "Centro", OpensAt: "8h"}
	err := dto.Validate(bad)
	var ve *dto.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "formato HH:MM", ve.Fields["opens_at"])
}

func TestValidate_RolCerrado(t *testing.T) {
	err := dto.Validate(dto.CreateMembershipRequest{UserID: "00000000-0000-0000-0000-000000000001", Role: "dueño"})
	var ve *dto.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields["role"], "super_admin")
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 0, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{Limit: 500}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
}
