package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/auth"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
	pkgjwt "github.com/jhoicas/dental-clinic-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "clinica-test"}

func TestRegisterYLogin(t *testing.T) {
	s := mocks.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), jwtCfg)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Dra.Soto@Clinica.cl", Password: "secreta123", IsSuperuser: true})
	require.NoError(t, err)
	assert.Equal(t, "dra.soto@clinica.cl", u.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "dra.soto@clinica.cl", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "dra.soto@clinica.cl", Password: "secreta123"})
	require.NoError(t, err)
	id, err := pkgjwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.True(t, id.IsSuperuser)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	s := mocks.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), jwtCfg)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@clinica.cl", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@clinica.cl", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@clinica.cl", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
