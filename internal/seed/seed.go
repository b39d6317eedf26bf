// Package seed wipes the store and loads the demo organization.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type account struct {
	username string
	name     string
	role     domain.UserRole
	manager  string
}

// accounts are created in order, so managers precede their reports.
var accounts = []account{
	{username: "admin", name: "Admin", role: domain.UserRoleAdmin},
	{username: "hr", name: "HR Desk", role: domain.UserRoleHR},
	{username: "it", name: "IT Desk", role: domain.UserRoleIT},
	{username: "employee1", name: "Employee One", role: domain.UserRoleEmployee},
	{username: "employee2", name: "Employee Two", role: domain.UserRoleEmployee, manager: "employee1"},
	{username: "employee3", name: "Employee Three", role: domain.UserRoleEmployee, manager: "employee1"},
}

// Reset deletes every activity, feedback, ticket and user. It is the only
// path that removes audit entries.
func Reset(ctx context.Context, store repository.Store) error {
	return store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Activities().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if err := tx.Feedback().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete feedback: %w", err)
		}
		if err := tx.Tickets().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete tickets: %w", err)
		}
		if err := tx.Users().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		return nil
	})
}

// Run resets the store and creates the demo accounts, all sharing password.
func Run(ctx context.Context, store repository.Store, hasher *auth.Hasher, password, emailDomain string, logger *zap.Logger) ([]domain.User, error) {
	if emailDomain == "" {
		emailDomain = "example.com"
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	var created []domain.User
	err = store.WithinTx(ctx, func(tx repository.Store) error {
		if err := Reset(ctx, tx); err != nil {
			return err
		}
		ids := map[string]string{}
		for _, acc := range accounts {
			user := &domain.User{
				Username:     acc.username,
				Email:        acc.username + "@" + emailDomain,
				Name:         acc.name,
				PasswordHash: hash,
				Role:         acc.role,
			}
			if acc.manager != "" {
				managerID := ids[acc.manager]
				user.ManagerID = &managerID
			}
			if err := tx.Users().Create(ctx, user); err != nil {
				return fmt.Errorf("create %s: %w", acc.username, err)
			}
			ids[acc.username] = user.ID
			created = append(created, *user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("seed complete", zap.Int("users", len(created)))
	return created, nil
}
