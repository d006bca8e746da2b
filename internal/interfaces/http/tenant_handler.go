package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// TenantSwitcher operaciones de selección de empresa y sucursal.
type TenantSwitcher interface {
	Resolve(ctx context.Context, userID string, sess tenant.SessionState) (entity.TenantContext, error)
	AvailableBranches(ctx context.Context, companyID int64) ([]*entity.Branch, error)
	SelectableCompanies(ctx context.Context, userID string, isSuperuser bool) ([]*entity.Company, error)
	SwitchCompany(ctx context.Context, userID string, isSuperuser bool, companyID int64, sess tenant.SessionState) (entity.TenantContext, error)
	SwitchBranch(ctx context.Context, tc entity.TenantContext, branchID int64, sess tenant.SessionState) (entity.TenantContext, error)
}

// TenantHandler expone el contexto actual y los cambios de empresa/sucursal.
type TenantHandler struct {
	resolver TenantSwitcher
	store    *session.Store
}

// NewTenantHandler construye el handler.
func NewTenantHandler(resolver TenantSwitcher, store *session.Store) *TenantHandler {
	return &TenantHandler{resolver: resolver, store: store}
}

// Context devuelve el contexto de tenant del request y las sucursales disponibles.
// GET /contexto
func (h *TenantHandler) Context(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondContext(c, tc)
}

// SwitchBranch godoc
// @Summary      Cambiar de sucursal
// @Tags         tenant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchBranchRequest  true  "branch_id"
// @Success      200   {object}  dto.TenantContextResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /seleccionar-sucursal [post]
func (h *TenantHandler) SwitchBranch(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SwitchBranchRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, err)
	}
	tc, err = h.resolver.SwitchBranch(c.UserContext(), tc, in.BranchID, sessionState{sess})
	if err != nil {
		return respondError(c, err)
	}
	if err := sess.Save(); err != nil {
		return respondError(c, err)
	}
	return h.respondContext(c, tc)
}

// SelectableCompanies lista las empresas a las que el usuario puede cambiar.
// GET /seleccionar-empresa/ y GET /empresas/
func (h *TenantHandler) SelectableCompanies(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	list, err := h.resolver.SelectableCompanies(c.UserContext(), id.UserID, id.IsSuperuser)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.SelectableCompaniesResponse{Items: make([]dto.CompanyResponse, 0, len(list))}
	for _, co := range list {
		out.Items = append(out.Items, *usecase.EntityToCompanyResponse(co))
	}
	if sess, err := h.store.Get(c); err == nil {
		if current, ok := (sessionState{sess}).CompanyID(); ok {
			out.CurrentCompanyID = current
		}
	}
	return c.JSON(out)
}

// SwitchCompany godoc
// @Summary      Cambiar de empresa
// @Tags         tenant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchCompanyRequest  true  "company_id"
// @Success      200   {object}  dto.TenantContextResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /seleccionar-empresa/ [post]
func (h *TenantHandler) SwitchCompany(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.SwitchCompanyRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, err)
	}
	tc, err := h.resolver.SwitchCompany(c.UserContext(), id.UserID, id.IsSuperuser, in.CompanyID, sessionState{sess})
	if err != nil {
		return respondError(c, err)
	}
	if err := sess.Save(); err != nil {
		return respondError(c, err)
	}
	return h.respondContext(c, tc)
}

func (h *TenantHandler) respondContext(c *fiber.Ctx, tc entity.TenantContext) error {
	out := dto.TenantContextResponse{State: string(tc.State()), AvailableBranches: []dto.BranchResponse{}}
	if tc.Company != nil {
		out.Company = usecase.EntityToCompanyResponse(tc.Company)
	}
	if tc.Branch != nil {
		out.Branch = usecase.EntityToBranchResponse(tc.Branch)
	}
	if tc.CompanyID != 0 {
		branches, err := h.resolver.AvailableBranches(c.UserContext(), tc.CompanyID)
		if err != nil {
			return respondError(c, err)
		}
		out.AvailableBranches = usecase.BranchesToResponse(branches)
	}
	return c.JSON(out)
}
