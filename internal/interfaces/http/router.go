package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/access"
	appanalytics "github.com/jhoicas/dental-clinic-api/internal/application/analytics"
	"github.com/jhoicas/dental-clinic-api/internal/application/auth"
	"github.com/jhoicas/dental-clinic-api/internal/application/cashier"
	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	BranchUC      *usecase.BranchUseCase
	PatientUC     *usecase.PatientUseCase
	AppointmentUC *usecase.AppointmentUseCase
	TreatmentUC   *usecase.TreatmentUseCase
	PaymentUC     *usecase.PaymentUseCase
	ProcedureUC   *usecase.ProcedureUseCase
	CatalogUCs    []*usecase.CatalogUseCase
	ClosureUC     *cashier.ClosureUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Permissions   *access.PermissionService
	Resolver      *tenant.Resolver
	Sessions      *session.Store
	Log           *logger.Logger
	Metrics       *metrics.Metrics
	JWTSecret     string
	CookieSecure  bool
	TokenTTL      time.Duration
}

// catalogPaths ruta pública de cada catálogo.
var catalogPaths = map[entity.CatalogKind]string{
	entity.CatalogSpecialties:    "/especialidades",
	entity.CatalogPaymentMethods: "/medios-pago",
	entity.CatalogPrevisions:     "/previsiones",
}

type crudHandler interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// Router registra middlewares globales y rutas.
// Orden: access log, identidad (JWT opcional), gate de tenant; luego autenticación y permiso por ruta.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log, deps.Metrics))
	app.Use(Identify(deps.JWTSecret))
	app.Use(NewTenantGate(deps.Resolver, deps.Sessions, deps.Log, deps.Metrics).Handler())

	requireAuth := RequireAuth()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, deps.CookieSecure, deps.TokenTTL)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/me", requireAuth, authHandler.Me)

	// Selección de empresa y sucursal
	tenantHandler := NewTenantHandler(deps.Resolver, deps.Sessions)
	app.Get("/seleccionar-empresa", requireAuth, tenantHandler.SelectableCompanies)
	app.Post("/seleccionar-empresa", requireAuth, tenantHandler.SwitchCompany)
	app.Get("/empresas", requireAuth, tenantHandler.SelectableCompanies)
	app.Get("/contexto", requireAuth, tenantHandler.Context)
	app.Post("/seleccionar-sucursal", requireAuth, tenantHandler.SwitchBranch)

	// Administración (superusuarios)
	admin := app.Group("/admin", requireAuth, RequireSuperuser())
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	admin.Get("/empresas", companyHandler.List)
	admin.Post("/empresas", companyHandler.Create)
	admin.Get("/empresas/:id", companyHandler.GetByID)
	admin.Put("/empresas/:id", companyHandler.Update)
	admin.Post("/empresas/:id/desactivar", companyHandler.Deactivate)
	admin.Post("/empresas/:id/activar", companyHandler.Activate)
	admin.Delete("/empresas/:id", companyHandler.Delete)

	branchHandler := NewBranchHandler(deps.BranchUC)
	admin.Get("/empresas/:id/sucursales", branchHandler.AdminList)
	admin.Post("/empresas/:id/sucursales", branchHandler.AdminSave)
	admin.Put("/empresas/:id/sucursales/:branchId", branchHandler.AdminSave)

	memberHandler := NewMemberHandler(deps.Permissions)
	admin.Get("/empresas/:id/miembros", memberHandler.List)
	admin.Post("/empresas/:id/miembros", memberHandler.Add)
	admin.Patch("/miembros/:id", memberHandler.Update)
	admin.Get("/miembros/:id/permisos", memberHandler.ListPermissions)
	admin.Post("/miembros/:id/permisos", memberHandler.Grant)
	admin.Post("/usuarios", authHandler.Register)

	// Registros de la clínica: empresa actual, permiso por módulo
	perms := deps.Permissions

	branches := app.Group("/sucursales", requireAuth)
	branches.Get("/", RequireModule(entity.ModuleBranches, perms), branchHandler.List)
	branches.Post("/", RequireModule(entity.ModuleBranches, perms), branchHandler.Create)
	branches.Put("/:id", RequireModule(entity.ModuleBranches, perms), branchHandler.Update)
	branches.Delete("/:id", RequireModule(entity.ModuleBranches, perms), branchHandler.Deactivate)

	patientHandler := NewPatientHandler(deps.PatientUC)
	patients := crud(app, "/pacientes", entity.ModulePatients, perms, requireAuth, patientHandler)
	patients.Post("/:id/compartir", RequirePermission(entity.ModulePatients, entity.ActionEdit, perms), patientHandler.Share)

	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments := crud(app, "/citas", entity.ModuleAppointments, perms, requireAuth, appointmentHandler)
	appointments.Patch("/:id/estado", RequirePermission(entity.ModuleAppointments, entity.ActionEdit, perms), appointmentHandler.ChangeStatus)

	crud(app, "/tratamientos", entity.ModuleTreatments, perms, requireAuth, NewTreatmentHandler(deps.TreatmentUC))
	crud(app, "/pagos", entity.ModulePayments, perms, requireAuth, NewPaymentHandler(deps.PaymentUC))
	crud(app, "/procedimientos", entity.ModuleProcedures, perms, requireAuth, NewProcedureHandler(deps.ProcedureUC))
	for _, uc := range deps.CatalogUCs {
		crud(app, catalogPaths[uc.Kind()], uc.Kind().Module(), perms, requireAuth, NewCatalogHandler(uc))
	}

	closureHandler := NewCashClosureHandler(deps.ClosureUC)
	closures := app.Group("/cierres-caja", requireAuth)
	closures.Get("/", RequirePermission(entity.ModuleCashClosures, entity.ActionView, perms), closureHandler.List)
	closures.Post("/", RequirePermission(entity.ModuleCashClosures, entity.ActionCreate, perms), closureHandler.Create)
	closures.Get("/:id", RequirePermission(entity.ModuleCashClosures, entity.ActionView, perms), closureHandler.Get)
	closures.Get("/:id/pdf", RequirePermission(entity.ModuleCashClosures, entity.ActionExport, perms), closureHandler.PDF)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get("/dashboard", requireAuth, RequirePermission(entity.ModuleDashboard, entity.ActionView, perms), dashboardHandler.GetSummary)
}

// crud registra list/create/detail/update/delete con la acción derivada del método HTTP.
func crud(app *fiber.App, prefix, module string, checker PermissionChecker, requireAuth fiber.Handler, h crudHandler) fiber.Router {
	g := app.Group(prefix, requireAuth)
	perm := RequireModule(module, checker)
	g.Get("/", perm, h.List)
	g.Post("/", perm, h.Create)
	g.Get("/:id", perm, h.Get)
	g.Put("/:id", perm, h.Update)
	g.Delete("/:id", perm, h.Delete)
	return g
}
