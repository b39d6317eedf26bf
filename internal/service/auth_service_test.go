package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository/memstore"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newAuthService(domainRestriction string) (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	svc := NewAuthService(AuthDependencies{
		Store:              memstore.New(),
		Tokens:             tokens,
		Hasher:             auth.NewHasher(4),
		Limiter:            auth.NewLoginLimiter(nil, 5, time.Minute, zap.NewNop()),
		AllowedEmailDomain: domainRestriction,
		Logger:             zap.NewNop(),
	})
	return svc, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAuthService("corp.example")

	res, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "Alice@corp.example", Password: "Secret@123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Role != domain.UserRoleEmployee || res.User.Email != "alice@corp.example" {
		t.Fatalf("unexpected user %+v", res.User)
	}
	if res.User.PasswordHash == "Secret@123" {
		t.Fatalf("password must be hashed")
	}
	identity, err := tokens.Verify(res.Token)
	if err != nil || identity.UserID != res.User.ID {
		t.Fatalf("token does not identify the new user: %+v (%v)", identity, err)
	}

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@corp.example", Password: "Secret@123"})
	expectCode(t, err, apperrors.CodeConflict)

	login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "Secret@123"})
	if err != nil || login.Token == "" {
		t.Fatalf("login: %v", err)
	}
	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	expectCode(t, err, apperrors.CodeInvalidCreds)
	_, err = svc.Login(ctx, LoginInput{Username: "nobody", Password: "Secret@123"})
	expectCode(t, err, apperrors.CodeInvalidCreds)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService("corp.example")

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{name: "short username", input: RegisterInput{Username: "al", Email: "al@corp.example", Password: "Secret@123"}},
		{name: "username symbols", input: RegisterInput{Username: "al-ice", Email: "al@corp.example", Password: "Secret@123"}},
		{name: "weak password", input: RegisterInput{Username: "alice", Email: "al@corp.example", Password: "secret123"}},
		{name: "bad email", input: RegisterInput{Username: "alice", Email: "not-an-email", Password: "Secret@123"}},
		{name: "foreign domain", input: RegisterInput{Username: "alice", Email: "alice@gmail.com", Password: "Secret@123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			expectCode(t, err, apperrors.CodeValidation)
		})
	}
}

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Secret@123": true,
		"Secret123":  false,
		"secret@123": false,
		"SECRET@123": false,
		"Secret@abc": false,
		"Secret#123": false,
	}
	for password, want := range cases {
		if got := strongPassword(password); got != want {
			t.Fatalf("strongPassword(%q) = %v, want %v", password, got, want)
		}
	}
}
