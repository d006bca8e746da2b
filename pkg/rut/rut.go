// Package rut valida y normaliza el RUT chileno (módulo 11).
package rut

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize deja el RUT como "12345678-5": sin puntos ni espacios, DV en mayúscula.
// Si no trae guion, el último carácter se toma como dígito verificador.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsDigit(r) || r == 'K' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) < 2 {
		return clean
	}
	return clean[:len(clean)-1] + "-" + clean[len(clean)-1:]
}

// Validate revisa formato y dígito verificador. Acepta "12.345.678-5", "12345678-5" o "123456785".
func Validate(s string) error {
	n := Normalize(s)
	body, dv, ok := strings.Cut(n, "-")
	if !ok || len(body) < 7 || len(body) > 8 {
		return fmt.Errorf("rut: formato inválido %q", s)
	}
	if strings.ContainsRune(body, 'K') {
		return fmt.Errorf("rut: formato inválido %q", s)
	}
	expected, err := ComputeDV(body)
	if err != nil {
		return err
	}
	if dv[0] != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %s", expected, dv)
	}
	return nil
}

// ComputeDV calcula el dígito verificador del cuerpo numérico (pesos 2..7 desde la derecha).
func ComputeDV(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		d := body[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("rut: carácter no numérico %q", d)
		}
		sum += int(d-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}
