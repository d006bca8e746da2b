package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

const membershipColumns = `m.id, m.user_id, m.company_id, m.branch_id, m.role, m.active, m.start_date, m.end_date, m.created_at, m.updated_at`

// MembershipRepo implementación de MembershipRepository (usable con pool o tx).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create inserta la membresía. uq_memberships_user_company -> domain.ErrDuplicate.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (user_id, company_id, branch_id, role, active, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.UserID, m.CompanyID, m.BranchID, m.Role, m.Active, m.StartDate, m.EndDate, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	return writeErr("insert membership", err)
}

// GetByID obtiene una membresía por ID.
func (r *MembershipRepo) GetByID(ctx context.Context, id int64) (*entity.Membership, error) {
	return r.one(ctx, `SELECT `+membershipColumns+` FROM memberships m WHERE m.id = $1`, id)
}

// FindByUserAndCompany obtiene la membresía del par (usuario, empresa).
func (r *MembershipRepo) FindByUserAndCompany(ctx context.Context, userID string, companyID int64) (*entity.Membership, error) {
	return r.one(ctx, `SELECT `+membershipColumns+` FROM memberships m WHERE m.user_id = $1 AND m.company_id = $2`, userID, companyID)
}

// FirstActiveByUser membresía activa de menor id con empresa activa.
func (r *MembershipRepo) FirstActiveByUser(ctx context.Context, userID string) (*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		  FROM memberships m
		  JOIN companies c ON c.id = m.company_id
		 WHERE m.user_id = $1 AND m.active AND c.active
		 ORDER BY m.id
		 LIMIT 1`
	return r.one(ctx, query, userID)
}

// ListActiveByUser membresías activas del usuario con empresa activa, por id.
func (r *MembershipRepo) ListActiveByUser(ctx context.Context, userID string) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		  FROM memberships m
		  JOIN companies c ON c.id = m.company_id
		 WHERE m.user_id = $1 AND m.active AND c.active
		 ORDER BY m.id`
	return r.many(ctx, query, userID)
}

// ListByCompany todas las membresías de la empresa.
func (r *MembershipRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Membership, error) {
	return r.many(ctx, `SELECT `+membershipColumns+` FROM memberships m WHERE m.company_id = $1 ORDER BY m.id`, companyID)
}

// Update actualiza rol, sucursal, estado y vigencia.
func (r *MembershipRepo) Update(ctx context.Context, m *entity.Membership) error {
	query := `
		UPDATE memberships
		   SET branch_id = $2, role = $3, active = $4, start_date = $5, end_date = $6, updated_at = $7
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.BranchID, m.Role, m.Active, m.StartDate, m.EndDate, m.UpdatedAt)
	if err != nil {
		return writeErr("update membership", err)
	}
	return affected(tag)
}

// FindOrCreate inserta con ON CONFLICT DO NOTHING; si otra transacción ganó la carrera
// se relee la fila existente.
func (r *MembershipRepo) FindOrCreate(ctx context.Context, m *entity.Membership) (*entity.Membership, bool, error) {
	query := `
		INSERT INTO memberships AS m (user_id, company_id, branch_id, role, active, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, company_id) DO NOTHING
		RETURNING ` + membershipColumns
	created, err := scanMembership(r.q.QueryRow(ctx, query,
		m.UserID, m.CompanyID, m.BranchID, m.Role, m.Active, m.StartDate, m.EndDate, m.CreatedAt, m.UpdatedAt,
	))
	if err == nil {
		return created, true, nil
	}
	if !isNoRows(err) {
		return nil, false, writeErr("find or create membership", err)
	}
	existing, err := r.FindByUserAndCompany(ctx, m.UserID, m.CompanyID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("find or create membership: fila en conflicto no encontrada")
	}
	return existing, false, nil
}

func scanMembership(row pgx.Row) (*entity.Membership, error) {
	var m entity.Membership
	var role string
	if err := row.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.BranchID, &role, &m.Active,
		&m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Role = entity.Role(role)
	return &m, nil
}

func (r *MembershipRepo) one(ctx context.Context, query string, args ...any) (*entity.Membership, error) {
	m, err := scanMembership(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

func (r *MembershipRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Membership, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	list := []*entity.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
