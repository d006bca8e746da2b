package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia para Permission.
type PermissionRepository interface {
	// Upsert crea o actualiza la fila (membresía, módulo) en una sola sentencia.
	// En inserción un flag nil vale false salvo view (true); en actualización todo flag nil vale false.
	Upsert(ctx context.Context, membershipID int64, module string, flags entity.PermissionFlags) (*entity.Permission, error)
	Get(ctx context.Context, membershipID int64, module string) (*entity.Permission, error)
	ListByMembership(ctx context.Context, membershipID int64) ([]*entity.Permission, error)
}
