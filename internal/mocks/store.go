// Package mocks contiene dobles de prueba: un almacén en memoria que implementa los puertos de
// repository (con las mismas restricciones de unicidad que el esquema SQL) y mocks de testify.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// Store es un almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq int64

	companies    map[int64]*entity.Company
	branches     map[int64]*entity.Branch
	users        map[string]*entity.User
	memberships  map[int64]*entity.Membership
	permissions  map[int64]*entity.Permission
	patients     map[string]*entity.Patient
	appointments map[string]*entity.Appointment
	treatments   map[string]*entity.Treatment
	payments     map[string]*entity.Payment
	closures     map[string]*entity.CashRegisterClosure
	procedures   map[string]*entity.Procedure
	catalog      map[string]*entity.CatalogItem

	// MembershipCreates cuenta inserciones efectivas de membresías (tests de idempotencia).
	MembershipCreates int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:    map[int64]*entity.Company{},
		branches:     map[int64]*entity.Branch{},
		users:        map[string]*entity.User{},
		memberships:  map[int64]*entity.Membership{},
		permissions:  map[int64]*entity.Permission{},
		patients:     map[string]*entity.Patient{},
		appointments: map[string]*entity.Appointment{},
		treatments:   map[string]*entity.Treatment{},
		payments:     map[string]*entity.Payment{},
		closures:     map[string]*entity.CashRegisterClosure{},
		procedures:   map[string]*entity.Procedure{},
		catalog:      map[string]*entity.CatalogItem{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Vistas por puerto.
func (s *Store) Companies() repository.CompanyRepository        { return companyRepo{s} }
func (s *Store) Branches() repository.BranchRepository          { return branchRepo{s} }
func (s *Store) Users() repository.UserRepository               { return userRepo{s} }
func (s *Store) Memberships() repository.MembershipRepository   { return membershipRepo{s} }
func (s *Store) Permissions() repository.PermissionRepository   { return permissionRepo{s} }
func (s *Store) Patients() repository.PatientRepository         { return patientRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return appointmentRepo{s} }
func (s *Store) Treatments() repository.TreatmentRepository     { return treatmentRepo{s} }
func (s *Store) Payments() repository.PaymentRepository         { return paymentRepo{s} }
func (s *Store) CashClosures() repository.CashClosureRepository { return closureRepo{s} }
func (s *Store) Procedures() repository.ProcedureRepository     { return procedureRepo{s} }
func (s *Store) Catalog() repository.CatalogRepository          { return catalogRepo{s} }
func (s *Store) Dashboard() repository.DashboardRepository      { return dashboardRepo{s} }
func (s *Store) TenantTx() repository.TenantTxRunner            { return txRunner{s} }
func (s *Store) CashierTx() repository.CashierTxRunner          { return txRunner{s} }

// ─── Tx ──────────────────────────────────────────────────────────────────────

type txRunner struct{ s *Store }

// Las transacciones en memoria se serializan; no hay rollback.
func (t txRunner) RunTenant(ctx context.Context, fn func(repository.BranchRepository, repository.MembershipRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(branchRepo{t.s}, membershipRepo{t.s})
}

func (t txRunner) RunCashier(ctx context.Context, fn func(repository.PaymentRepository, repository.CashClosureRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(paymentRepo{t.s}, closureRepo{t.s})
}

// ─── Company ─────────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.companies {
		if x.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	if c.ID == 0 {
		c.ID = r.s.nextID()
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r companyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) sorted(onlyActive bool) []*entity.Company {
	out := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		if onlyActive && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r companyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.sorted(false), limit, offset), nil
}

func (r companyRepo) ListActive(_ context.Context) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(true), nil
}

func (r companyRepo) FirstActive(_ context.Context) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.sorted(true)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r companyRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = active
	return nil
}

// Delete replica el ON DELETE CASCADE del esquema.
func (r companyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.companies, id)
	for k, b := range r.s.branches {
		if b.CompanyID == id {
			delete(r.s.branches, k)
		}
	}
	for k, m := range r.s.memberships {
		if m.CompanyID == id {
			delete(r.s.memberships, k)
			for pk, p := range r.s.permissions {
				if p.MembershipID == m.ID {
					delete(r.s.permissions, pk)
				}
			}
		}
	}
	for k, p := range r.s.patients {
		if p.CompanyID == id {
			delete(r.s.patients, k)
		}
	}
	for k, a := range r.s.appointments {
		if a.CompanyID == id {
			delete(r.s.appointments, k)
		}
	}
	for k, t := range r.s.treatments {
		if t.CompanyID == id {
			delete(r.s.treatments, k)
		}
	}
	for k, p := range r.s.payments {
		if p.CompanyID == id {
			delete(r.s.payments, k)
		}
	}
	for k, c := range r.s.closures {
		if c.CompanyID == id {
			delete(r.s.closures, k)
		}
	}
	for k, p := range r.s.procedures {
		if p.CompanyID == id {
			delete(r.s.procedures, k)
		}
	}
	for k, c := range r.s.catalog {
		if c.CompanyID == id {
			delete(r.s.catalog, k)
		}
	}
	return nil
}

// ─── Branch ──────────────────────────────────────────────────────────────────

type branchRepo struct{ s *Store }

func (r branchRepo) checkUnique(b *entity.Branch) error {
	if _, ok := r.s.companies[b.CompanyID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, x := range r.s.branches {
		if x.ID == b.ID || x.CompanyID != b.CompanyID {
			continue
		}
		if x.Name == b.Name {
			return domain.ErrDuplicate
		}
		if b.IsPrimary && x.IsPrimary {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r branchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(b); err != nil {
		return err
	}
	b.ID = r.s.nextID()
	cp := *b
	r.s.branches[b.ID] = &cp
	return nil
}

func (r branchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.branches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUnique(b); err != nil {
		return err
	}
	cp := *b
	r.s.branches[b.ID] = &cp
	return nil
}

func (r branchRepo) GetByID(_ context.Context, id int64) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.branches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r branchRepo) list(companyID int64, onlyActive bool) []*entity.Branch {
	out := []*entity.Branch{}
	for _, b := range r.s.branches {
		if b.CompanyID != companyID || (onlyActive && !b.Active) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r branchRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(companyID, false), nil
}

func (r branchRepo) ListActiveByCompany(_ context.Context, companyID int64) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(companyID, true), nil
}

func (r branchRepo) ClearPrimary(_ context.Context, companyID, exceptID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.branches {
		if b.CompanyID == companyID && b.ID != exceptID {
			b.IsPrimary = false
		}
	}
	return nil
}

// ─── User ────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

// ─── Membership ──────────────────────────────────────────────────────────────

type membershipRepo struct{ s *Store }

func (r membershipRepo) find(userID string, companyID int64) *entity.Membership {
	for _, m := range r.s.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			return m
		}
	}
	return nil
}

func (r membershipRepo) checkBranch(m *entity.Membership) error {
	if m.BranchID == nil {
		return nil
	}
	b, ok := r.s.branches[*m.BranchID]
	if !ok || b.CompanyID != m.CompanyID {
		return domain.ErrInvalidInput
	}
	return nil
}

func (r membershipRepo) insert(m *entity.Membership) {
	if m.ID == 0 {
		m.ID = r.s.nextID()
	}
	cp := *m
	r.s.memberships[m.ID] = &cp
	r.s.MembershipCreates++
}

func (r membershipRepo) Create(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.find(m.UserID, m.CompanyID) != nil {
		return domain.ErrDuplicate
	}
	if err := r.checkBranch(m); err != nil {
		return err
	}
	r.insert(m)
	return nil
}

func (r membershipRepo) GetByID(_ context.Context, id int64) (*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.memberships[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r membershipRepo) FindByUserAndCompany(_ context.Context, userID string, companyID int64) (*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m := r.find(userID, companyID); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r membershipRepo) activeByUser(userID string) []*entity.Membership {
	out := []*entity.Membership{}
	for _, m := range r.s.memberships {
		if m.UserID != userID || !m.Active {
			continue
		}
		c, ok := r.s.companies[m.CompanyID]
		if !ok || !c.Active {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r membershipRepo) FirstActiveByUser(_ context.Context, userID string) (*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.activeByUser(userID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r membershipRepo) ListActiveByUser(_ context.Context, userID string) ([]*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.activeByUser(userID), nil
}

func (r membershipRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Membership{}
	for _, m := range r.s.memberships {
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r membershipRepo) Update(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.memberships[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkBranch(m); err != nil {
		return err
	}
	cp := *m
	r.s.memberships[m.ID] = &cp
	return nil
}

func (r membershipRepo) FindOrCreate(_ context.Context, m *entity.Membership) (*entity.Membership, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.find(m.UserID, m.CompanyID); existing != nil {
		cp := *existing
		return &cp, false, nil
	}
	if err := r.checkBranch(m); err != nil {
		return nil, false, err
	}
	r.insert(m)
	cp := *m
	return &cp, true, nil
}

// ─── Permission ──────────────────────────────────────────────────────────────

type permissionRepo struct{ s *Store }

func (r permissionRepo) find(membershipID int64, module string) *entity.Permission {
	for _, p := range r.s.permissions {
		if p.MembershipID == membershipID && p.Module == module {
			return p
		}
	}
	return nil
}

func flag(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (r permissionRepo) Upsert(_ context.Context, membershipID int64, module string, f entity.PermissionFlags) (*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.memberships[membershipID]; !ok {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := r.find(membershipID, module)
	if p == nil {
		p = &entity.Permission{
			ID:           r.s.nextID(),
			MembershipID: membershipID,
			Module:       module,
			CanView:      flag(f.View, true),
			CreatedAt:    now,
		}
		r.s.permissions[p.ID] = p
	} else {
		p.CanView = flag(f.View, false)
	}
	p.CanCreate = flag(f.Create, false)
	p.CanEdit = flag(f.Edit, false)
	p.CanDelete = flag(f.Delete, false)
	p.CanExport = flag(f.Export, false)
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}

func (r permissionRepo) Get(_ context.Context, membershipID int64, module string) (*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.find(membershipID, module); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r permissionRepo) ListByMembership(_ context.Context, membershipID int64) ([]*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Permission{}
	for _, p := range r.s.permissions {
		if p.MembershipID == membershipID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
	return out, nil
}

// ─── Patient ─────────────────────────────────────────────────────────────────

type patientRepo struct{ s *Store }

func clonePatient(p *entity.Patient) *entity.Patient {
	cp := *p
	cp.SharedWith = append([]int64(nil), p.SharedWith...)
	return &cp
}

func (r patientRepo) Create(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.patients {
		if x.CompanyID == p.CompanyID && x.DocumentID == p.DocumentID {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.patients[p.ID] = clonePatient(p)
	return nil
}

func (r patientRepo) GetVisible(_ context.Context, companyID int64, id string) (*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.patients[id]
	if !ok || !p.VisibleTo(companyID) {
		return nil, nil
	}
	return clonePatient(p), nil
}

func (r patientRepo) GetByDocument(_ context.Context, companyID int64, documentID string) (*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.patients {
		if p.CompanyID == companyID && p.DocumentID == documentID {
			return clonePatient(p), nil
		}
	}
	return nil, nil
}

func (r patientRepo) Update(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.patients[p.ID]
	if !ok || old.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	cp := clonePatient(p)
	cp.SharedWith = old.SharedWith
	r.s.patients[p.ID] = cp
	return nil
}

func (r patientRepo) ListVisible(_ context.Context, f repository.PatientFilter) ([]*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(f.Search)
	out := []*entity.Patient{}
	for _, p := range r.s.patients {
		if !p.Active || !p.VisibleTo(f.CompanyID) {
			continue
		}
		if p.CompanyID == f.CompanyID && f.BranchID != nil && !p.ShareAcrossBranches &&
			p.BranchID != nil && *p.BranchID != *f.BranchID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.FullName()+" "+p.DocumentID), search) {
			continue
		}
		out = append(out, clonePatient(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName == out[j].LastName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return page(out, f.Limit, f.Offset), nil
}

// ReplaceShares valida todas las empresas antes de tocar la ficha (todo o nada, como la tx de Postgres).
func (r patientRepo) ReplaceShares(_ context.Context, patientID string, companyIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.patients[patientID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, id := range companyIDs {
		if _, ok := r.s.companies[id]; !ok {
			return domain.ErrInvalidInput
		}
	}
	p.SharedWith = append([]int64(nil), companyIDs...)
	return nil
}

// ─── Appointment ─────────────────────────────────────────────────────────────

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.s.appointments[a.ID] = &cp
	return nil
}

func (r appointmentRepo) GetByID(_ context.Context, companyID int64, id string) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.appointments[id]; ok && a.CompanyID == companyID {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r appointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.appointments[a.ID]; !ok || old.CompanyID != a.CompanyID {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.appointments[a.ID] = &cp
	return nil
}

func (r appointmentRepo) Delete(_ context.Context, companyID int64, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.appointments[id]; !ok || a.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

func (r appointmentRepo) List(_ context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Appointment{}
	for _, a := range r.s.appointments {
		if a.CompanyID != f.CompanyID || !sameBranch(f.BranchID, a.BranchID) {
			continue
		}
		if (f.PatientID != "" && a.PatientID != f.PatientID) ||
			(f.ProfessionalID != "" && (a.ProfessionalID == nil || *a.ProfessionalID != f.ProfessionalID)) ||
			(f.Status != "" && a.Status != f.Status) ||
			(f.From != nil && a.StartsAt.Before(*f.From)) ||
			(f.To != nil && !a.StartsAt.Before(*f.To)) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return page(out, f.Limit, f.Offset), nil
}

// ─── Treatment ───────────────────────────────────────────────────────────────

type treatmentRepo struct{ s *Store }

func (r treatmentRepo) Create(_ context.Context, t *entity.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	r.s.treatments[t.ID] = &cp
	return nil
}

func (r treatmentRepo) GetByID(_ context.Context, companyID int64, id string) (*entity.Treatment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.treatments[id]; ok && t.CompanyID == companyID {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r treatmentRepo) Update(_ context.Context, t *entity.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.treatments[t.ID]; !ok || old.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	cp := *t
	r.s.treatments[t.ID] = &cp
	return nil
}

func (r treatmentRepo) Delete(_ context.Context, companyID int64, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.treatments[id]; !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.treatments, id)
	return nil
}

func (r treatmentRepo) List(_ context.Context, f repository.TreatmentFilter) ([]*entity.Treatment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Treatment{}
	for _, t := range r.s.treatments {
		if t.CompanyID != f.CompanyID || !sameBranch(f.BranchID, t.BranchID) {
			continue
		}
		if (f.PatientID != "" && t.PatientID != f.PatientID) || (f.Status != "" && t.Status != f.Status) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), nil
}

// ─── Payment ─────────────────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r paymentRepo) GetByID(_ context.Context, companyID int64, id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payments[id]; ok && p.CompanyID == companyID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r paymentRepo) Update(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.payments[p.ID]; !ok || old.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r paymentRepo) Delete(_ context.Context, companyID int64, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payments[id]; !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.payments, id)
	return nil
}

func (r paymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Payment{}
	for _, p := range r.s.payments {
		if p.CompanyID != f.CompanyID || !sameBranch(f.BranchID, p.BranchID) {
			continue
		}
		if (f.PatientID != "" && p.PatientID != f.PatientID) ||
			(f.From != nil && p.PaidAt.Before(*f.From)) ||
			(f.To != nil && !p.PaidAt.Before(*f.To)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return page(out, f.Limit, f.Offset), nil
}

func (r paymentRepo) ListUnclosedForUpdate(_ context.Context, companyID int64, branchID *int64, from, to time.Time) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Payment{}
	for _, p := range r.s.payments {
		if p.CompanyID != companyID || p.Closed() || !sameBranch(branchID, p.BranchID) {
			continue
		}
		if p.PaidAt.Before(from) || !p.PaidAt.Before(to) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out, nil
}

func (r paymentRepo) AssignClosure(_ context.Context, ids []string, closureID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		p, ok := r.s.payments[id]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Closed() {
			return domain.ErrConflict
		}
	}
	for _, id := range ids {
		cid := closureID
		r.s.payments[id].ClosureID = &cid
	}
	return nil
}

// ─── Cash closure ────────────────────────────────────────────────────────────

type closureRepo struct{ s *Store }

func cloneClosure(c *entity.CashRegisterClosure) *entity.CashRegisterClosure {
	cp := *c
	cp.Lines = append([]entity.CashRegisterClosureLine(nil), c.Lines...)
	return &cp
}

func (r closureRepo) Create(_ context.Context, c *entity.CashRegisterClosure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	for i := range c.Lines {
		c.Lines[i].ClosureID = c.ID
	}
	r.s.closures[c.ID] = cloneClosure(c)
	return nil
}

func (r closureRepo) GetByID(_ context.Context, companyID int64, id string) (*entity.CashRegisterClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.closures[id]; ok && c.CompanyID == companyID {
		return cloneClosure(c), nil
	}
	return nil, nil
}

func (r closureRepo) List(_ context.Context, companyID int64, branchID *int64, limit, offset int) ([]*entity.CashRegisterClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.CashRegisterClosure{}
	for _, c := range r.s.closures {
		if c.CompanyID == companyID && sameBranch(branchID, c.BranchID) {
			out = append(out, cloneClosure(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClosedAt.After(out[j].ClosedAt) })
	return page(out, limit, offset), nil
}

// ─── Procedure ───────────────────────────────────────────────────────────────

type procedureRepo struct{ s *Store }

func (r procedureRepo) unique(p *entity.Procedure) error {
	for _, x := range r.s.procedures {
		if x.ID != p.ID && x.CompanyID == p.CompanyID && x.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r procedureRepo) Create(_ context.Context, p *entity.Procedure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.unique(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	r.s.procedures[p.ID] = &cp
	return nil
}

func (r procedureRepo) GetByID(_ context.Context, companyID int64, id string) (*entity.Procedure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.procedures[id]; ok && p.CompanyID == companyID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r procedureRepo) Update(_ context.Context, p *entity.Procedure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.procedures[p.ID]; !ok || old.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	if err := r.unique(p); err != nil {
		return err
	}
	cp := *p
	r.s.procedures[p.ID] = &cp
	return nil
}

func (r procedureRepo) Delete(_ context.Context, companyID int64, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.procedures[id]; !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.procedures, id)
	return nil
}

func (r procedureRepo) ListByCompany(_ context.Context, companyID int64, onlyActive bool, limit, offset int) ([]*entity.Procedure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Procedure{}
	for _, p := range r.s.procedures {
		if p.CompanyID == companyID && (!onlyActive || p.Active) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) unique(item *entity.CatalogItem) error {
	for _, x := range r.s.catalog {
		if x.ID != item.ID && x.Kind == item.Kind && x.CompanyID == item.CompanyID && x.Name == item.Name {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r catalogRepo) Create(_ context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.unique(item); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	r.s.catalog[item.ID] = &cp
	return nil
}

func (r catalogRepo) GetByID(_ context.Context, kind entity.CatalogKind, companyID int64, id string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.catalog[id]; ok && c.Kind == kind && c.CompanyID == companyID {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r catalogRepo) Update(_ context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.catalog[item.ID]
	if !ok || old.Kind != item.Kind || old.CompanyID != item.CompanyID {
		return domain.ErrNotFound
	}
	if err := r.unique(item); err != nil {
		return err
	}
	cp := *item
	r.s.catalog[item.ID] = &cp
	return nil
}

func (r catalogRepo) Delete(_ context.Context, kind entity.CatalogKind, companyID int64, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.catalog[id]
	if !ok || c.Kind != kind || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.catalog, id)
	return nil
}

func (r catalogRepo) List(_ context.Context, kind entity.CatalogKind, companyID int64, onlyActive bool) ([]*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.CatalogItem{}
	for _, c := range r.s.catalog {
		if c.Kind == kind && c.CompanyID == companyID && (!onlyActive || c.Active) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type dashboardRepo struct{ s *Store }

func (r dashboardRepo) CountAppointments(_ context.Context, companyID int64, branchID *int64, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.appointments {
		if a.CompanyID == companyID && sameBranch(branchID, a.BranchID) &&
			a.Status != entity.AppointmentCancelled && !a.StartsAt.Before(from) && a.StartsAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) SumPayments(_ context.Context, companyID int64, branchID *int64, from, to time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	n := 0
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && sameBranch(branchID, p.BranchID) && !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
			total = total.Add(p.Amount)
			n++
		}
	}
	return total, n, nil
}

func (r dashboardRepo) CountOpenTreatments(_ context.Context, companyID int64, branchID *int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.treatments {
		if t.CompanyID == companyID && sameBranch(branchID, t.BranchID) &&
			(t.Status == entity.TreatmentPlanned || t.Status == entity.TreatmentInProgress) {
			n++
		}
	}
	return n, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// sameBranch aplica el filtro opcional de sucursal: sin filtro todo pasa.
func sameBranch(filter, value *int64) bool {
	if filter == nil {
		return true
	}
	return value != nil && *value == *filter
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
