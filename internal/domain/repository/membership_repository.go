package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// MembershipRepository define el puerto de persistencia para Membership.
type MembershipRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe el par (usuario, empresa).
	Create(ctx context.Context, m *entity.Membership) error
	GetByID(ctx context.Context, id int64) (*entity.Membership, error)
	FindByUserAndCompany(ctx context.Context, userID string, companyID int64) (*entity.Membership, error)
	// FirstActiveByUser devuelve la membresía activa de menor id cuya empresa está activa.
	FirstActiveByUser(ctx context.Context, userID string) (*entity.Membership, error)
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.Membership, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Membership, error)
	Update(ctx context.Context, m *entity.Membership) error
	// FindOrCreate inserta m si no existe el par (usuario, empresa); si existe devuelve la fila existente.
	// La unicidad en BD es la garantía ante requests concurrentes.
	FindOrCreate(ctx context.Context, m *entity.Membership) (*entity.Membership, bool, error)
}
