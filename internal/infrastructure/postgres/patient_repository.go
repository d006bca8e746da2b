package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = `p.id, p.company_id, p.branch_id, p.document_id, p.first_name, p.last_name, p.birth_date,
	p.phone, p.email, p.address, p.prevision_id, p.notes, p.share_across_branches, p.active, p.created_at, p.updated_at,
	COALESCE((SELECT array_agg(s.company_id ORDER BY s.company_id) FROM patient_shares s WHERE s.patient_id = p.id), '{}')`

// visibleTo: ficha propia o compartida explícitamente con la empresa.
const visibleTo = `(p.company_id = ? OR EXISTS (SELECT 1 FROM patient_shares s WHERE s.patient_id = p.id AND s.company_id = ?))`

// PatientRepo implementación de PatientRepository sobre PostgreSQL.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador.
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create inserta la ficha. uq_patients_company_document -> domain.ErrDuplicate.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `
		INSERT INTO patients (id, company_id, branch_id, document_id, first_name, last_name, birth_date, phone, email,
		                      address, prevision_id, notes, share_across_branches, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.BranchID, p.DocumentID, p.FirstName, p.LastName, p.BirthDate, p.Phone, p.Email,
		p.Address, p.PrevisionID, p.Notes, p.ShareAcrossBranches, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	return writeErr("insert patient", err)
}

// GetVisible ficha propia de companyID o compartida con ella.
func (r *PatientRepo) GetVisible(ctx context.Context, companyID int64, id string) (*entity.Patient, error) {
	var c conds
	c.add("p.id = ?", id)
	c.add(visibleTo, companyID, companyID)
	return r.one(ctx, `SELECT `+patientColumns+` FROM patients p`+c.where(), c.args...)
}

// GetByDocument ficha propia de la empresa por documento.
func (r *PatientRepo) GetByDocument(ctx context.Context, companyID int64, documentID string) (*entity.Patient, error) {
	return r.one(ctx, `SELECT `+patientColumns+` FROM patients p WHERE p.company_id = $1 AND p.document_id = $2`, companyID, documentID)
}

// Update actualiza la ficha. Los compartidos se gestionan con ReplaceShares.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients
		   SET branch_id = $3, document_id = $4, first_name = $5, last_name = $6, birth_date = $7, phone = $8,
		       email = $9, address = $10, prevision_id = $11, notes = $12, share_across_branches = $13,
		       active = $14, updated_at = $15
		 WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.BranchID, p.DocumentID, p.FirstName, p.LastName, p.BirthDate, p.Phone,
		p.Email, p.Address, p.PrevisionID, p.Notes, p.ShareAcrossBranches, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("update patient", err)
	}
	return affected(tag)
}

// ListVisible fichas activas visibles para la empresa. Con sucursal, las fichas propias
// asignadas a otra sucursal se excluyen salvo que se compartan entre sucursales.
func (r *PatientRepo) ListVisible(ctx context.Context, f repository.PatientFilter) ([]*entity.Patient, error) {
	var c conds
	c.add("p.active")
	c.add(visibleTo, f.CompanyID, f.CompanyID)
	if f.BranchID != nil {
		c.add("(p.company_id <> ? OR p.share_across_branches OR p.branch_id IS NULL OR p.branch_id = ?)", f.CompanyID, *f.BranchID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		c.add("(p.first_name || ' ' || p.last_name || ' ' || p.document_id) ILIKE ?", like)
	}
	query := `SELECT ` + patientColumns + ` FROM patients p` + c.where() + ` ORDER BY p.last_name, p.first_name`
	query += c.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	list := []*entity.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ReplaceShares reemplaza el conjunto de empresas con las que se comparte la ficha.
// DELETE e INSERT van en la misma transacción: si el INSERT falla (FK) se conservan los compartidos previos.
func (r *PatientRepo) ReplaceShares(ctx context.Context, patientID string, companyIDs []int64) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM patient_shares WHERE patient_id = $1`, patientID); err != nil {
			return fmt.Errorf("clear patient shares: %w", err)
		}
		if len(companyIDs) == 0 {
			return nil
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO patient_shares (patient_id, company_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING`, patientID, companyIDs)
		return writeErr("insert patient shares", err)
	})
}

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	if err := row.Scan(&p.ID, &p.CompanyID, &p.BranchID, &p.DocumentID, &p.FirstName, &p.LastName, &p.BirthDate,
		&p.Phone, &p.Email, &p.Address, &p.PrevisionID, &p.Notes, &p.ShareAcrossBranches, &p.Active,
		&p.CreatedAt, &p.UpdatedAt, &p.SharedWith); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) one(ctx context.Context, query string, args ...any) (*entity.Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}
