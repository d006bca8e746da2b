// seed deja la base lista para el primer login: aplica migraciones y crea (si no existen)
// la empresa inicial, su sucursal principal, un superusuario y su membresía super_admin.
//
// Uso: SEED_COMPANY_TAX_ID=76.123.456-7 SEED_ADMIN_EMAIL=admin@clinica.cl SEED_ADMIN_PASSWORD=... go run ./cmd/seed
//
// Se puede ejecutar varias veces: cada paso busca antes de crear.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/application/auth"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dental-clinic-api/pkg/config"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/rut"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("seed fallido")
	}
	log.Info().Msg("seed completado")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	s := cfg.Seed
	if s.CompanyTaxID == "" || s.AdminEmail == "" || s.AdminPassword == "" {
		return errors.New("SEED_COMPANY_TAX_ID, SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		return err
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// 1. Empresa
	company, err := companyRepo.GetByTaxID(ctx, rut.Normalize(s.CompanyTaxID))
	if err != nil {
		return fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		created, err := usecase.NewCompanyUseCase(companyRepo).Create(ctx, dto.CreateCompanyRequest{
			LegalName: s.CompanyName,
			TaxID:     s.CompanyTaxID,
		})
		if err != nil {
			return fmt.Errorf("crear empresa: %w", err)
		}
		company = &entity.Company{ID: created.ID}
		log.Info().Int64("company_id", created.ID).Msg("empresa creada")
	}

	// 2. Sucursal principal
	branches, err := branchRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		return fmt.Errorf("listar sucursales: %w", err)
	}
	var branchID int64
	for _, b := range branches {
		if b.IsPrimary {
			branchID = b.ID
		}
	}
	if branchID == 0 {
		created, err := usecase.NewBranchUseCase(companyRepo, branchRepo, txRunner).Save(ctx, company.ID, nil, dto.SaveBranchRequest{
			Name:      s.BranchName,
			IsPrimary: true,
		})
		if err != nil {
			return fmt.Errorf("crear sucursal: %w", err)
		}
		branchID = created.ID
		log.Info().Int64("branch_id", branchID).Msg("sucursal principal creada")
	}

	// 3. Superusuario
	user, err := userRepo.GetByEmail(ctx, s.AdminEmail)
	if err != nil {
		return fmt.Errorf("buscar usuario: %w", err)
	}
	userID := ""
	if user != nil {
		userID = user.ID
	} else {
		authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
		created, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Email:       s.AdminEmail,
			Password:    s.AdminPassword,
			Name:        "Administrador",
			IsSuperuser: true,
		})
		if err != nil {
			return fmt.Errorf("crear superusuario: %w", err)
		}
		userID = created.ID
		log.Info().Str("user_id", userID).Msg("superusuario creado")
	}

	// 4. Membresía super_admin
	now := time.Now()
	m, created, err := membershipRepo.FindOrCreate(ctx, &entity.Membership{
		UserID:    userID,
		CompanyID: company.ID,
		BranchID:  &branchID,
		Role:      entity.RoleSuperAdmin,
		Active:    true,
		StartDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("membresía: %w", err)
	}
	log.Info().Int64("membership_id", m.ID).Bool("created", created).Msg("membresía super_admin lista")
	return nil
}
