package mocks

import (
	"context"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// Helpers de siembra para tests. Fallan con panic porque solo se usan en preparación.

// AddCompany inserta una empresa con id explícito.
func (s *Store) AddCompany(id int64, name string, active bool) *entity.Company {
	c := &entity.Company{ID: id, LegalName: name, TaxID: name, Active: active, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.Companies().Create(context.Background(), c); err != nil {
		panic(err)
	}
	s.mu.Lock()
	if id > s.seq {
		s.seq = id
	}
	s.mu.Unlock()
	return c
}

// AddBranch inserta una sucursal activa.
func (s *Store) AddBranch(companyID int64, name string, primary bool) *entity.Branch {
	b := &entity.Branch{CompanyID: companyID, Name: name, Active: true, IsPrimary: primary}
	if err := s.Branches().Create(context.Background(), b); err != nil {
		panic(err)
	}
	return b
}

// AddUser inserta un usuario activo.
func (s *Store) AddUser(id, email string, superuser bool) *entity.User {
	u := &entity.User{ID: id, Email: email, Name: email, IsSuperuser: superuser, Active: true}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// AddMembership inserta una membresía con id explícito.
func (s *Store) AddMembership(id int64, userID string, companyID int64, branchID *int64, role entity.Role, active bool) *entity.Membership {
	m := &entity.Membership{ID: id, UserID: userID, CompanyID: companyID, BranchID: branchID, Role: role, Active: active, StartDate: time.Now().Add(-time.Hour)}
	if err := s.Memberships().Create(context.Background(), m); err != nil {
		panic(err)
	}
	s.mu.Lock()
	if id > s.seq {
		s.seq = id
	}
	s.mu.Unlock()
	return m
}
