package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserService owns the identity model and the manager forest.
type UserService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// UserProfile is a user joined with a summary of their manager.
type UserProfile struct {
	User    domain.User
	Manager *domain.User
}

// SetManagerInput names a user and their new manager by username.
type SetManagerInput struct {
	Username        string `validate:"required"`
	ManagerUsername string `validate:"required"`
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// IsManager reports whether anyone currently reports to userID. It always
// reads the store; manager-hood is never cached.
func (s *UserService) IsManager(ctx context.Context, userID string) (bool, error) {
	return isManager(ctx, s.store, userID)
}

func isManager(ctx context.Context, store repository.Store, userID string) (bool, error) {
	count, err := store.Users().CountReports(ctx, userID)
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	return count > 0, nil
}

// Get returns one user profile.
func (s *UserService) Get(ctx context.Context, id string) (*UserProfile, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	profile := &UserProfile{User: *user}
	if user.ManagerID != nil {
		manager, err := s.store.Users().GetByID(ctx, *user.ManagerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInternalError(err)
		}
		profile.Manager = manager
	}
	return profile, nil
}

// List returns every user with their manager summary.
func (s *UserService) List(ctx context.Context) ([]UserProfile, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	profiles := make([]UserProfile, 0, len(users))
	for _, u := range users {
		profile := UserProfile{User: u}
		if u.ManagerID != nil {
			profile.Manager = byID[*u.ManagerID]
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// SetManager makes managerUsername the direct manager of username. Only ADMIN
// may reassign managers, and the manager relation must stay a forest.
func (s *UserService) SetManager(ctx context.Context, actor *domain.User, input SetManagerInput) (*UserProfile, error) {
	if !actor.HasRole(domain.UserRoleAdmin) {
		return nil, apperrors.NewForbidden("only admins can assign managers")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if strings.EqualFold(strings.TrimSpace(input.Username), strings.TrimSpace(input.ManagerUsername)) {
		return nil, apperrors.NewValidationError("user and manager cannot be the same")
	}

	var user, manager *domain.User
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Users().LockHierarchy(ctx); err != nil {
			return apperrors.NewInternalError(err)
		}
		var err error
		user, err = tx.Users().GetByUsername(ctx, strings.TrimSpace(input.Username))
		if err != nil {
			return notFoundOr(err, "user")
		}
		manager, err = tx.Users().GetByUsername(ctx, strings.TrimSpace(input.ManagerUsername))
		if err != nil {
			return notFoundOr(err, "manager")
		}

		cycle, err := wouldCreateCycle(ctx, tx.Users(), user.ID, manager)
		if err != nil {
			return err
		}
		if cycle {
			return apperrors.NewConflict("assignment would create a cycle in the manager hierarchy")
		}

		if err := tx.Users().SetManager(ctx, user.ID, &manager.ID); err != nil {
			return apperrors.NewInternalError(err)
		}
		user.ManagerID = &manager.ID
		return nil
	})
	if err != nil {
		s.logger.Warn("manager assignment rejected",
			zap.String("username", input.Username),
			zap.String("manager", input.ManagerUsername),
			zap.String("code", apperrors.CodeOf(err)),
		)
		return nil, err
	}

	s.logger.Info("manager assigned", zap.String("user_id", user.ID), zap.String("manager_id", manager.ID))
	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventManagerAssigned,
		ActorID: actor.ID,
		Payload: events.ManagerAssignedPayload{UserID: user.ID, ManagerID: manager.ID},
	})
	return &UserProfile{User: *user, Manager: manager}, nil
}

// wouldCreateCycle walks up from the proposed manager. Reaching userID means
// userID is already an ancestor of the manager.
func wouldCreateCycle(ctx context.Context, users repository.UserRepository, userID string, manager *domain.User) (bool, error) {
	seen := map[string]struct{}{}
	current := manager
	for current != nil {
		if current.ID == userID {
			return true, nil
		}
		if _, ok := seen[current.ID]; ok {
			return true, nil
		}
		seen[current.ID] = struct{}{}
		if current.ManagerID == nil {
			return false, nil
		}
		next, err := users.GetByID(ctx, *current.ManagerID)
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, apperrors.NewInternalError(err)
		}
		current = next
	}
	return false, nil
}
