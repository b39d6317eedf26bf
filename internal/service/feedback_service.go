package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// FeedbackService gates and stores employee ratings of HR and IT staff.
type FeedbackService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// FeedbackDependencies bundles collaborators for the feedback service.
type FeedbackDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// GiveFeedbackInput rates a staff member identified by username.
type GiveFeedbackInput struct {
	TargetUsername string `validate:"required"`
	Rating         int    `validate:"gte=1,lte=5"`
	Comment        string `validate:"max=1000"`
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	return &FeedbackService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// GiveFeedback accepts a rating only from an EMPLOYEE who has at least one
// RESOLVED ticket in the target's department.
func (s *FeedbackService) GiveFeedback(ctx context.Context, actor *domain.User, input GiveFeedbackInput) (*domain.Feedback, error) {
	if !actor.HasRole(domain.UserRoleEmployee) {
		return nil, apperrors.NewForbidden("only employees can give feedback")
	}
	input.TargetUsername = strings.TrimSpace(input.TargetUsername)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var (
		feedback *domain.Feedback
		target   *domain.User
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		target, err = tx.Users().GetByUsername(ctx, input.TargetUsername)
		if err != nil {
			return notFoundOr(err, "user")
		}
		department, ok := domain.TicketTypeForRole(target.Role)
		if !ok {
			return apperrors.NewInvalidTarget("feedback can only be given to HR or IT users")
		}

		resolved, err := tx.Tickets().CountByCreator(ctx, actor.ID, domain.TicketStatusResolved, department)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if resolved == 0 {
			return apperrors.NewNoMatchingTickets("you have no resolved " + string(department) + " tickets to give feedback on")
		}

		feedback = &domain.Feedback{
			Rating:    input.Rating,
			GivenByID: actor.ID,
			GivenToID: target.ID,
		}
		if comment := strings.TrimSpace(input.Comment); comment != "" {
			feedback.Comment = &comment
		}
		if err := tx.Feedback().Create(ctx, feedback); err != nil {
			return apperrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("feedback rejected",
			zap.String("user_id", actor.ID),
			zap.String("target", input.TargetUsername),
			zap.String("code", apperrors.CodeOf(err)),
		)
		return nil, err
	}

	s.logger.Info("feedback given", zap.String("feedback_id", feedback.ID), zap.String("given_to", target.ID))
	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventFeedbackGiven,
		ActorID: actor.ID,
		Payload: events.FeedbackGivenPayload{
			FeedbackID: feedback.ID,
			GivenToID:  target.ID,
			TargetRole: target.Role,
			Rating:     feedback.Rating,
		},
	})
	return feedback, nil
}

// ListFeedback returns all feedback, newest first. ADMIN only.
func (s *FeedbackService) ListFeedback(ctx context.Context, actor *domain.User) ([]domain.Feedback, error) {
	if !actor.HasRole(domain.UserRoleAdmin) {
		return nil, apperrors.NewForbidden("only admins can view feedback")
	}
	feedback, err := s.store.Feedback().List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return feedback, nil
}
