package http

import (
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
)

var _ tenant.SessionState = sessionState{}

// sessionState adapta una sesión Fiber al puerto tenant.SessionState.
type sessionState struct {
	s *session.Session
}

func (st sessionState) CompanyID() (int64, bool) { return st.int64(tenant.SessionKeyCompany) }
func (st sessionState) SetCompanyID(id int64)    { st.s.Set(tenant.SessionKeyCompany, id) }
func (st sessionState) ClearCompany()            { st.s.Delete(tenant.SessionKeyCompany) }
func (st sessionState) BranchID() (int64, bool)  { return st.int64(tenant.SessionKeyBranch) }
func (st sessionState) SetBranchID(id int64)     { st.s.Set(tenant.SessionKeyBranch, id) }
func (st sessionState) ClearBranch()             { st.s.Delete(tenant.SessionKeyBranch) }

// int64 tolera los tipos numéricos que puede devolver el codec de la sesión.
func (st sessionState) int64(key string) (int64, bool) {
	switch v := st.s.Get(key).(type) {
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case float64:
		return int64(v), v > 0
	default:
		return 0, false
	}
}
