package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ManagerResolver answers whether a user currently has direct reports.
type ManagerResolver interface {
	IsManager(ctx context.Context, userID string) (bool, error)
}

// RequireRole ensures the caller's stored role is one of allowed.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := MustPrincipal(c)
		if err != nil {
			return err
		}
		if !user.HasRole(allowed...) {
			return apperrors.NewForbidden("you do not have permission to perform this action")
		}
		return c.Next()
	}
}

// RequireManager ensures the caller has at least one direct report. The check
// is recomputed on every request.
func RequireManager(managers ManagerResolver) fiber.Handler {
	return RequireRoleOrManager(managers)
}

// RequireRoleOrManager admits callers holding one of allowed, or anyone who
// currently manages at least one user.
func RequireRoleOrManager(managers ManagerResolver, allowed ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := MustPrincipal(c)
		if err != nil {
			return err
		}
		if len(allowed) > 0 && user.HasRole(allowed...) {
			return c.Next()
		}
		isManager, err := managers.IsManager(c.UserContext(), user.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !isManager {
			return apperrors.NewForbidden("only managers can access this resource")
		}
		return c.Next()
	}
}
