// Siembra el super administrador inicial a partir de SUPER_ADMIN_EMAIL y
// SUPER_ADMIN_PASSWORD. Idempotente: si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/infrastructure/postgres"
	"github.com/tu-usuario/erp-multitenant/pkg/config"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	if cfg.SuperAdmin.Email == "" || cfg.SuperAdmin.Password == "" {
		log.Fatal().Msg("SUPER_ADMIN_EMAIL y SUPER_ADMIN_PASSWORD son requeridos")
	}
	if len(cfg.SuperAdmin.Password) < 8 {
		log.Fatal().Msg("SUPER_ADMIN_PASSWORD debe tener al menos 8 caracteres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewSuperAdminRepository(pool)

	if existing, err := repo.FindByEmail(cfg.SuperAdmin.Email); err == nil {
		log.Info().Str("id", existing.ID).Msg("el super admin ya existe, nada que hacer")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("consultar super admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña")
	}

	now := time.Now()
	admin := &entity.SuperAdmin{
		ID:           uuid.NewString(),
		Name:         "Super Admin",
		Email:        cfg.SuperAdmin.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear super admin")
	}

	log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("super admin creado")
}
