package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/access"
	appanalytics "github.com/jhoicas/dental-clinic-api/internal/application/analytics"
	"github.com/jhoicas/dental-clinic-api/internal/application/auth"
	"github.com/jhoicas/dental-clinic-api/internal/application/cashier"
	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/dental-clinic-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dental-clinic-api/internal/infrastructure/postgres"
	infrasession "github.com/jhoicas/dental-clinic-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/dental-clinic-api/internal/interfaces/http"
	"github.com/jhoicas/dental-clinic-api/pkg/config"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	redisClient, err := infrasession.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	sessions := session.New(session.Config{
		Storage:        infrasession.NewRedisStorage(redisClient, ""),
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieSecure:   cfg.Session.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	m := metrics.New("clinic")

	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	treatmentRepo := postgres.NewTreatmentRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	closureRepo := postgres.NewCashClosureRepository(pool)
	procedureRepo := postgres.NewProcedureRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	permissionSvc := access.NewPermissionService(companyRepo, branchRepo, userRepo, membershipRepo, permissionRepo, log, m)
	resolver := tenant.NewResolver(companyRepo, branchRepo, membershipRepo, txRunner, log, m)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	catalogUCs := []*usecase.CatalogUseCase{
		usecase.NewCatalogUseCase(entity.CatalogSpecialties, catalogRepo),
		usecase.NewCatalogUseCase(entity.CatalogPaymentMethods, catalogRepo),
		usecase.NewCatalogUseCase(entity.CatalogPrevisions, catalogRepo),
	}

	// PDF: reporte de cierre de caja
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	closureUC := cashier.NewClosureUseCase(txRunner, closureRepo, catalogRepo, companyRepo, branchRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if fileExists("./docs/swagger.json") {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Clínica Dental API",
		}))
	}

	// Rutas operativas y assets: se registran antes del gate.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	if icon := filepath.Join(cfg.HTTP.StaticDir, "favicon.ico"); fileExists(icon) {
		app.Use(favicon.New(favicon.Config{File: icon, URL: "/favicon.ico"}))
	}
	app.Static("/static", cfg.HTTP.StaticDir)
	app.Static("/media", cfg.HTTP.MediaDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo),
		BranchUC:      usecase.NewBranchUseCase(companyRepo, branchRepo, txRunner),
		PatientUC:     usecase.NewPatientUseCase(patientRepo, catalogRepo),
		AppointmentUC: usecase.NewAppointmentUseCase(appointmentRepo, patientRepo, catalogRepo, membershipRepo),
		TreatmentUC:   usecase.NewTreatmentUseCase(treatmentRepo, patientRepo, procedureRepo),
		PaymentUC:     usecase.NewPaymentUseCase(paymentRepo, patientRepo, treatmentRepo, catalogRepo),
		ProcedureUC:   usecase.NewProcedureUseCase(procedureRepo, catalogRepo),
		CatalogUCs:    catalogUCs,
		ClosureUC:     closureUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(dashboardRepo),
		Permissions:   permissionSvc,
		Resolver:      resolver,
		Sessions:      sessions,
		Log:           log,
		Metrics:       m,
		JWTSecret:     cfg.JWT.Secret,
		CookieSecure:  cfg.Session.Secure,
		TokenTTL:      time.Duration(cfg.JWT.Expiration) * time.Minute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := redisClient.Close(); err != nil {
		log.Warn().Err(err).Msg("cierre de Redis")
	}

	log.Info().Msg("aplicación detenida")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
