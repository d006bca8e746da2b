package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/pkg/rut"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "76111222-8", rut.Normalize("76.111.222-8"))
	assert.Equal(t, "12345678-5", rut.Normalize(" 123456785 "))
	assert.Equal(t, "10000013-K", rut.Normalize("10.000.013-k"))
}

func TestComputeDV(t *testing.T) {
	dv, err := rut.ComputeDV("76111222")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	dv, err = rut.ComputeDV("12345678")
	require.NoError(t, err)
	assert.Equal(t, byte('5'), dv)

	dv, err = rut.ComputeDV("10000013")
	require.NoError(t, err)
	assert.Equal(t, byte('K'), dv)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, rut.Validate("76.111.222-8"))
	assert.NoError(t, rut.Validate("10.000.013-k"))
	assert.Error(t, rut.Validate("76.111.222-3"), "dígito verificador incorrecto")
	assert.Error(t, rut.Validate("123"), "muy corto")
	assert.Error(t, rut.Validate(""))
}
