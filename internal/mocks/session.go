package mocks

import "sync"

// Session implementa tenant.SessionState en memoria.
type Session struct {
	mu      sync.Mutex
	company *int64
	branch  *int64
}

// NewSession crea una sesión vacía.
func NewSession() *Session { return &Session{} }

func (s *Session) CompanyID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.company == nil {
		return 0, false
	}
	return *s.company, true
}

func (s *Session) SetCompanyID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = &id
}

func (s *Session) ClearCompany() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = nil
}

func (s *Session) BranchID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.branch == nil {
		return 0, false
	}
	return *s.branch, true
}

func (s *Session) SetBranchID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branch = &id
}

func (s *Session) ClearBranch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branch = nil
}
