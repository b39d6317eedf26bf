package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ActivityService appends to and reads the audit trail.
type ActivityService struct {
	store  repository.Store
	logger *zap.Logger
}

// ActivityDependencies bundles collaborators for the activity service.
type ActivityDependencies struct {
	Store  repository.Store
	Logger *zap.Logger
}

// NewActivityService constructs the service.
func NewActivityService(deps ActivityDependencies) *ActivityService {
	return &ActivityService{store: deps.Store, logger: loggerOrNop(deps.Logger)}
}

// LogActivity appends an entry through store, which may be a transaction.
// The only failure mode is a storage error, returned as INTERNAL_SERVER_ERROR
// so the surrounding transaction rolls back.
func (s *ActivityService) LogActivity(ctx context.Context, store repository.Store, actorID string, activityType domain.ActivityType, ticketID, message string) (*domain.Activity, error) {
	activity := &domain.Activity{
		UserID:   actorID,
		Type:     activityType,
		TicketID: ticketID,
	}
	if msg := strings.TrimSpace(message); msg != "" {
		activity.Message = &msg
	}
	if err := store.Activities().Create(ctx, activity); err != nil {
		s.logger.Error("failed to append activity",
			zap.String("ticket_id", ticketID),
			zap.String("type", string(activityType)),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError(err)
	}
	return activity, nil
}

// ListActivities returns the full audit trail, newest first. ADMIN only.
func (s *ActivityService) ListActivities(ctx context.Context, actor *domain.User) ([]repository.ActivityEntry, error) {
	if !actor.HasRole(domain.UserRoleAdmin) {
		return nil, apperrors.NewForbidden("only admins can view activities")
	}
	entries, err := s.store.Activities().List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFound("activities")
	}
	return entries, nil
}
