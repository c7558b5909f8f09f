package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/loan-platform/internal/auth"
	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/repository"
)

// TrafficRecorder appends a TrafficEvent for every /api request after the
// handler runs. Recording is best effort: insert failures are logged and do
// not affect the response.
func TrafficRecorder(traffic repository.TrafficRepository, authMiddleware *auth.AuthMiddleware, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if !strings.HasPrefix(c.Path(), "/api") {
			return err
		}

		event := &domain.TrafficEvent{
			Path:      c.Path(),
			Method:    c.Method(),
			ActorRole: domain.ActorRoleAnonymous,
		}
		if user := authMiddleware.Identify(c); user != nil {
			event.ActorRole = string(user.Role)
			event.ActorID = &user.ID
		}

		if insertErr := traffic.Insert(c.Context(), event); insertErr != nil {
			logger.Warn("traffic event insert failed", zap.Error(insertErr))
		}
		return err
	}
}
