package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	hhmmRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidationError agrupa los campos inválidos de una petición. Envuelve domain.ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los nombres de campo en errores son los del JSON.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate revisa los tags `validate` de v. Devuelve *ValidationError o nil.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "email":
		return "email inválido"
	case "uuid":
		return "uuid inválido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "hhmm":
		return "formato HH:MM"
	case "gtfield":
		return "debe ser posterior a " + fe.Param()
	default:
		return "valor inválido"
	}
}
