package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.TreatmentRepository = (*TreatmentRepo)(nil)

const treatmentColumns = `id, company_id, branch_id, patient_id, professional_id, procedure_id, tooth, description,
	status, price, started_on, completed_on, created_at, updated_at`

// TreatmentRepo implementación de TreatmentRepository sobre PostgreSQL.
type TreatmentRepo struct {
	q Querier
}

// NewTreatmentRepository construye el adaptador.
func NewTreatmentRepository(q Querier) *TreatmentRepo {
	return &TreatmentRepo{q: q}
}

// Create inserta el tratamiento.
func (r *TreatmentRepo) Create(ctx context.Context, t *entity.Treatment) error {
	query := `
		INSERT INTO treatments (id, company_id, branch_id, patient_id, professional_id, procedure_id, tooth, description,
		                        status, price, started_on, completed_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.BranchID, t.PatientID, t.ProfessionalID, t.ProcedureID, t.Tooth, t.Description,
		string(t.Status), t.Price, t.StartedOn, t.CompletedOn, t.CreatedAt, t.UpdatedAt,
	)
	return writeErr("insert treatment", err)
}

// GetByID tratamiento de la empresa.
func (r *TreatmentRepo) GetByID(ctx context.Context, companyID int64, id string) (*entity.Treatment, error) {
	t, err := scanTreatment(r.q.QueryRow(ctx,
		`SELECT `+treatmentColumns+` FROM treatments WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return t, nil
}

// Update actualiza el tratamiento dentro de su empresa.
func (r *TreatmentRepo) Update(ctx context.Context, t *entity.Treatment) error {
	query := `
		UPDATE treatments
		   SET branch_id = $3, professional_id = $4, procedure_id = $5, tooth = $6, description = $7,
		       status = $8, price = $9, started_on = $10, completed_on = $11, updated_at = $12
		 WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.BranchID, t.ProfessionalID, t.ProcedureID, t.Tooth, t.Description,
		string(t.Status), t.Price, t.StartedOn, t.CompletedOn, t.UpdatedAt,
	)
	if err != nil {
		return writeErr("update treatment", err)
	}
	return affected(tag)
}

// Delete elimina el tratamiento. Los pagos asociados conservan el registro (treatment_id -> NULL).
func (r *TreatmentRepo) Delete(ctx context.Context, companyID int64, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM treatments WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	return affected(tag)
}

// List tratamientos filtrados, más recientes primero.
func (r *TreatmentRepo) List(ctx context.Context, f repository.TreatmentFilter) ([]*entity.Treatment, error) {
	var c conds
	c.add("company_id = ?", f.CompanyID)
	if f.BranchID != nil {
		c.add("branch_id = ?", *f.BranchID)
	}
	if f.PatientID != "" {
		c.add("patient_id = ?", f.PatientID)
	}
	if f.Status != "" {
		c.add("status = ?", string(f.Status))
	}
	query := `SELECT ` + treatmentColumns + ` FROM treatments` + c.where() + ` ORDER BY created_at DESC`
	query += c.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()
	list := []*entity.Treatment{}
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTreatment(row pgx.Row) (*entity.Treatment, error) {
	var t entity.Treatment
	var status string
	if err := row.Scan(&t.ID, &t.CompanyID, &t.BranchID, &t.PatientID, &t.ProfessionalID, &t.ProcedureID,
		&t.Tooth, &t.Description, &status, &t.Price, &t.StartedOn, &t.CompletedOn, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.TreatmentStatus(status)
	return &t, nil
}
