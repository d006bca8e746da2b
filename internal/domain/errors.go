package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPermissionDenied   = errors.New("permiso denegado para el módulo")
	ErrTenantUnresolved   = errors.New("no hay empresa actual para el usuario")
	ErrBranchOutOfCompany = errors.New("la sucursal no pertenece a la empresa")
)
