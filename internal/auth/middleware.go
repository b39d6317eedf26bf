package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// Verifier turns a raw credential into an identity.
type Verifier interface {
	Verify(token string) (domain.Identity, error)
}

// UserLoader reloads the user behind a verified identity.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware validates tokens and loads the calling user.
type AuthMiddleware struct {
	verifier Verifier
	users    UserLoader
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier Verifier, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// Handle enforces authentication for protected routes. Both "Bearer" and
// "Token" schemes are accepted.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" ||
		!(strings.EqualFold(parts[0], "Bearer") || strings.EqualFold(parts[0], "Token")) {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	identity, err := m.verifier.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(c.UserContext(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthenticated("user no longer exists")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(principalKey).(*domain.User)
	return user, ok && user != nil
}

// MustPrincipal is PrincipalFromContext for handlers mounted behind Handle.
func MustPrincipal(c *fiber.Ctx) (*domain.User, error) {
	user, ok := PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	return user, nil
}
