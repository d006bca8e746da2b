package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `id, company_id, branch_id, patient_id, professional_id, specialty_id, starts_at,
	duration_minutes, status, reason, notes, created_at, updated_at`

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create inserta la cita.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, company_id, branch_id, patient_id, professional_id, specialty_id, starts_at,
		                          duration_minutes, status, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.BranchID, a.PatientID, a.ProfessionalID, a.SpecialtyID, a.StartsAt,
		a.DurationMinutes, string(a.Status), a.Reason, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return writeErr("insert appointment", err)
}

// GetByID cita de la empresa.
func (r *AppointmentRepo) GetByID(ctx context.Context, companyID int64, id string) (*entity.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// Update actualiza la cita dentro de su empresa.
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE appointments
		   SET branch_id = $3, patient_id = $4, professional_id = $5, specialty_id = $6, starts_at = $7,
		       duration_minutes = $8, status = $9, reason = $10, notes = $11, updated_at = $12
		 WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.BranchID, a.PatientID, a.ProfessionalID, a.SpecialtyID, a.StartsAt,
		a.DurationMinutes, string(a.Status), a.Reason, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return writeErr("update appointment", err)
	}
	return affected(tag)
}

// Delete elimina la cita de la empresa.
func (r *AppointmentRepo) Delete(ctx context.Context, companyID int64, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return affected(tag)
}

// List agenda filtrada, por hora de inicio ascendente. To es exclusivo.
func (r *AppointmentRepo) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	var c conds
	c.add("company_id = ?", f.CompanyID)
	if f.BranchID != nil {
		c.add("branch_id = ?", *f.BranchID)
	}
	if f.PatientID != "" {
		c.add("patient_id = ?", f.PatientID)
	}
	if f.ProfessionalID != "" {
		c.add("professional_id = ?", f.ProfessionalID)
	}
	if f.Status != "" {
		c.add("status = ?", string(f.Status))
	}
	if f.From != nil {
		c.add("starts_at >= ?", *f.From)
	}
	if f.To != nil {
		c.add("starts_at < ?", *f.To)
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointments` + c.where() + ` ORDER BY starts_at`
	query += c.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	list := []*entity.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	var status string
	if err := row.Scan(&a.ID, &a.CompanyID, &a.BranchID, &a.PatientID, &a.ProfessionalID, &a.SpecialtyID,
		&a.StartsAt, &a.DurationMinutes, &status, &a.Reason, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = entity.AppointmentStatus(status)
	return &a, nil
}
