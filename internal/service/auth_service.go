package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users         repository.UserRepository
	tokens        *auth.TokenManager
	hasher        *auth.Hasher
	limiter       *auth.LoginLimiter
	allowedDomain string
	logger        *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Store   repository.Store
	Tokens  *auth.TokenManager
	Hasher  *auth.Hasher
	Limiter *auth.LoginLimiter
	// AllowedEmailDomain restricts registration when non-empty.
	AllowedEmailDomain string
	Logger             *zap.Logger
}

// RegisterInput is a self-service registration request.
type RegisterInput struct {
	Username string `validate:"required,min=3,max=30,username"`
	Email    string `validate:"required,email"`
	Name     string `validate:"max=100"`
	Password string `validate:"required,min=8,password"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AuthResult is returned after a successful register or login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.Store.Users(),
		tokens:        deps.Tokens,
		hasher:        deps.Hasher,
		limiter:       deps.Limiter,
		allowedDomain: strings.ToLower(deps.AllowedEmailDomain),
		logger:        loggerOrNop(deps.Logger),
	}
}

// Register creates a new EMPLOYEE account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if s.allowedDomain != "" && !strings.HasSuffix(input.Email, "@"+s.allowedDomain) {
		return nil, apperrors.NewValidationError("email domain not allowed", "email must end with @"+s.allowedDomain)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("user with this username or email already exists")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.UserRoleEmployee,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("user with this username or email already exists")
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return s.issue(user)
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.limiter.Check(ctx, input.Username); err != nil {
		s.logger.Warn("login throttled", zap.String("username", input.Username))
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		s.limiter.RecordFailure(ctx, input.Username)
		return nil, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !ok {
		s.limiter.RecordFailure(ctx, input.Username)
		s.logger.Warn("invalid login attempt", zap.String("username", input.Username))
		return nil, apperrors.NewInvalidCredentials()
	}

	s.limiter.Reset(ctx, input.Username)
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
