package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/domain"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin allows admin and super_admin callers.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// RequireSuperAdmin allows only super_admin callers.
func RequireSuperAdmin() fiber.Handler {
	return RequireRole(domain.RoleSuperAdmin)
}
