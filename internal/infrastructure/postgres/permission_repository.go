package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

const permissionColumns = `id, membership_id, module, can_view, can_create, can_edit, can_delete, can_export, created_at, updated_at`

// PermissionRepo implementación de PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// Upsert crea o actualiza la fila (membresía, módulo) en una sentencia.
// Al insertar, view sin especificar vale true; al actualizar, todo flag sin especificar vale false.
func (r *PermissionRepo) Upsert(ctx context.Context, membershipID int64, module string, f entity.PermissionFlags) (*entity.Permission, error) {
	query := `
		INSERT INTO permissions (membership_id, module, can_view, can_create, can_edit, can_delete, can_export, created_at, updated_at)
		VALUES ($1, $2, COALESCE($3::boolean, true), COALESCE($4::boolean, false), COALESCE($5::boolean, false),
		        COALESCE($6::boolean, false), COALESCE($7::boolean, false), now(), now())
		ON CONFLICT (membership_id, module) DO UPDATE
		   SET can_view   = COALESCE($3::boolean, false),
		       can_create = EXCLUDED.can_create,
		       can_edit   = EXCLUDED.can_edit,
		       can_delete = EXCLUDED.can_delete,
		       can_export = EXCLUDED.can_export,
		       updated_at = now()
		RETURNING ` + permissionColumns
	p, err := scanPermission(r.q.QueryRow(ctx, query, membershipID, module, f.View, f.Create, f.Edit, f.Delete, f.Export))
	if err != nil {
		return nil, writeErr("upsert permission", err)
	}
	return p, nil
}

// Get obtiene el permiso de la membresía sobre el módulo (nil si no hay fila).
func (r *PermissionRepo) Get(ctx context.Context, membershipID int64, module string) (*entity.Permission, error) {
	p, err := scanPermission(r.q.QueryRow(ctx,
		`SELECT `+permissionColumns+` FROM permissions WHERE membership_id = $1 AND module = $2`, membershipID, module))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

// ListByMembership permisos de la membresía ordenados por módulo.
func (r *PermissionRepo) ListByMembership(ctx context.Context, membershipID int64) ([]*entity.Permission, error) {
	rows, err := r.q.Query(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE membership_id = $1 ORDER BY module`, membershipID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	list := []*entity.Permission{}
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPermission(row pgx.Row) (*entity.Permission, error) {
	var p entity.Permission
	if err := row.Scan(&p.ID, &p.MembershipID, &p.Module, &p.CanView, &p.CanCreate, &p.CanEdit,
		&p.CanDelete, &p.CanExport, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
