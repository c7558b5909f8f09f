package persistence

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/loan-platform/internal/auth"
	"github.com/spec-kit/loan-platform/internal/config"
	"github.com/spec-kit/loan-platform/internal/domain"
)

// SeedAdmins ensures the two fixed admin accounts exist. Existing rows are
// left untouched, so seeded passwords can be rotated manually.
func SeedAdmins(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping admin seeding")
		return nil
	}

	accounts := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, domain.RoleAdmin},
		{cfg.SuperAdminName, cfg.SuperAdminEmail, cfg.SuperAdminPassword, domain.RoleSuperAdmin},
	}

	const query = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING`

	for _, acct := range accounts {
		hash, err := auth.HashPassword(acct.password, bcryptCost)
		if err != nil {
			return err
		}
		tag, err := pool.Exec(ctx, query, acct.name, strings.ToLower(acct.email), hash, acct.role)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			logger.Info("seeded admin account", zap.String("email", acct.email), zap.String("role", string(acct.role)))
		}
	}
	return nil
}
