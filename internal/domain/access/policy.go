// Package access contiene la política pura de permisos por módulo.
// No conoce BD ni HTTP: recibe la membresía y la fila de permiso ya cargadas.
package access

import (
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// Motivos de la decisión. Se registran en logs y métricas.
const (
	ReasonNoMembership         = "no_membership"
	ReasonMembershipInactive   = "membership_inactive"
	ReasonMembershipNotStarted = "membership_not_started"
	ReasonMembershipExpired    = "membership_expired"
	ReasonSuperAdminBypass     = "super_admin_bypass"
	ReasonUnknownAction        = "unknown_action"
	ReasonNoPermissionRow      = "no_permission_row"
	ReasonActionNotGranted     = "action_not_granted"
	ReasonGranted              = "granted"
)

// Decision resultado de evaluar un permiso.
type Decision struct {
	Allowed bool
	// Bypass es true solo cuando el rol super_admin saltó la verificación por módulo.
	Bypass bool
	Reason string
}

// Evaluate decide si la membresía permite action sobre el módulo de p.
// Orden: existencia, estado activo, vigencia, bypass super_admin, acción conocida, fila de permiso, flag.
// p puede ser nil (sin fila para el módulo).
func Evaluate(m *entity.Membership, p *entity.Permission, action entity.Action, now time.Time) Decision {
	if m == nil {
		return deny(ReasonNoMembership)
	}
	if !m.Active {
		return deny(ReasonMembershipInactive)
	}
	if !m.StartDate.IsZero() && now.Before(m.StartDate) {
		return deny(ReasonMembershipNotStarted)
	}
	if !m.EffectiveAt(now) {
		return deny(ReasonMembershipExpired)
	}
	if m.Role == entity.RoleSuperAdmin {
		return Decision{Allowed: true, Bypass: true, Reason: ReasonSuperAdminBypass}
	}
	if p == nil {
		if _, known := (&entity.Permission{}).Allows(action); !known {
			return deny(ReasonUnknownAction)
		}
		return deny(ReasonNoPermissionRow)
	}
	allowed, known := p.Allows(action)
	if !known {
		return deny(ReasonUnknownAction)
	}
	if !allowed {
		return deny(ReasonActionNotGranted)
	}
	return Decision{Allowed: true, Reason: ReasonGranted}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
