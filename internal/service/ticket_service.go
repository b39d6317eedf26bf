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

const maxPageSize = 100

// TicketService coordinates ticket creation, queries and the action workflow.
type TicketService struct {
	store      repository.Store
	activities *ActivityService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      repository.Store
	Activities *ActivityService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateTicketInput describes a new ticket. Type and subtypes are matched
// case-insensitively.
type CreateTicketInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=5000"`
	Type        string `validate:"required"`
	HRSubtype   string
	ITSubtype   string
}

// ActionInput is a client request to act on a ticket.
type ActionInput struct {
	Action  string
	Remarks string
	Rating  *int
}

// ActionResult carries the updated ticket and the normalized request.
type ActionResult struct {
	Ticket   *domain.Ticket
	Action   domain.Action
	Remarks  string
	Rating   *int
	Role     domain.EffectiveRole
	Activity *domain.Activity
}

// ListOptions pages a listing. A zero Limit returns everything.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) apply(filter repository.TicketFilter) repository.TicketFilter {
	if o.Limit > 0 {
		filter.Limit = o.Limit
		if filter.Limit > maxPageSize {
			filter.Limit = maxPageSize
		}
		if o.Offset > 0 {
			filter.Offset = o.Offset
		}
	}
	return filter
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	activities := deps.Activities
	if activities == nil {
		activities = NewActivityService(ActivityDependencies{Store: deps.Store, Logger: deps.Logger})
	}
	return &TicketService{
		store:      deps.Store,
		activities: activities,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// CreateTicket files a ticket for an EMPLOYEE. Managers skip approval for
// every subtype; others need it only for the approval-required subset.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input CreateTicketInput) (*domain.Ticket, error) {
	if !actor.HasRole(domain.UserRoleEmployee) {
		return nil, apperrors.NewForbidden("only employees can create tickets")
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	classification, err := domain.ParseClassification(input.Type, input.HRSubtype, input.ITSubtype)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Type:        classification.Type,
		HRSubtype:   classification.HRSubtype,
		ITSubtype:   classification.ITSubtype,
		CreatedByID: actor.ID,
	}
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		manager, err := isManager(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		ticket.RequiresApproval, ticket.Status = domain.RouteNewTicket(classification, manager)
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return apperrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("user_id", actor.ID),
		zap.String("status", string(ticket.Status)),
		zap.Bool("requires_approval", ticket.RequiresApproval),
	)
	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketCreated,
		ActorID:  actor.ID,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Type:             ticket.Type,
			Subtype:          ticket.Subtype(),
			Status:           ticket.Status,
			RequiresApproval: ticket.RequiresApproval,
		},
	})
	return ticket, nil
}

// ListTickets returns every ticket for ADMIN and the caller's own otherwise.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, opts ListOptions) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	if !actor.HasRole(domain.UserRoleAdmin) {
		filter.CreatedByID = &actor.ID
	}
	return s.list(ctx, opts.apply(filter))
}

// GetTicket returns a ticket visible to actor. Tickets owned by someone else
// are reported as missing to non-admins.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, id string) (*domain.Ticket, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket")
	}
	if !actor.HasRole(domain.UserRoleAdmin) && ticket.CreatedByID != actor.ID {
		return nil, apperrors.NewNotFound("ticket")
	}
	return ticket, nil
}

// ListActionTickets returns the queue the actor can act on. HR, IT and ADMIN
// see their queue across the organization; managers see only tickets of
// their direct reports awaiting approval.
func (s *TicketService) ListActionTickets(ctx context.Context, actor *domain.User, opts ListOptions) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	switch actor.Role {
	case domain.UserRoleHR:
		filter.Statuses = []domain.TicketStatus{domain.TicketStatusForwardedToHR}
	case domain.UserRoleIT:
		filter.Statuses = []domain.TicketStatus{domain.TicketStatusForwardedToIT}
	case domain.UserRoleAdmin:
		filter.Statuses = []domain.TicketStatus{domain.TicketStatusForwardedToManager}
	default:
		reports, err := s.reportIDs(ctx, actor)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []domain.TicketStatus{domain.TicketStatusForwardedToManager}
		filter.CreatedByIDs = reports
	}
	return s.list(ctx, opts.apply(filter))
}

// ListReportTickets returns every ticket created by the actor's direct reports.
func (s *TicketService) ListReportTickets(ctx context.Context, actor *domain.User, opts ListOptions) ([]domain.Ticket, error) {
	reports, err := s.reportIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, opts.apply(repository.TicketFilter{CreatedByIDs: reports}))
}

// ListDepartmentTickets returns every ticket of the HR or IT actor's department.
func (s *TicketService) ListDepartmentTickets(ctx context.Context, actor *domain.User, opts ListOptions) ([]domain.Ticket, error) {
	ticketType, ok := domain.TicketTypeForRole(actor.Role)
	if !ok {
		return nil, apperrors.NewForbidden("only HR and IT staff can view department tickets")
	}
	return s.list(ctx, opts.apply(repository.TicketFilter{Type: &ticketType}))
}

// ListTicketActivity returns the audit trail of one ticket, oldest first.
func (s *TicketService) ListTicketActivity(ctx context.Context, actor *domain.User, id string) ([]repository.ActivityEntry, error) {
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Activities().ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

// reportIDs fails FORBIDDEN when the actor has no direct reports.
func (s *TicketService) reportIDs(ctx context.Context, actor *domain.User) ([]string, error) {
	ids, err := s.store.Users().ListReportIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(ids) == 0 {
		return nil, apperrors.NewForbidden("only managers can access this resource")
	}
	return ids, nil
}

func (s *TicketService) list(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.store.Tickets().List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// PerformAction authorizes and applies an action on a ticket. The ticket row
// is locked, every fact is re-read, and the update plus its activity entry
// commit together or not at all.
func (s *TicketService) PerformAction(ctx context.Context, actor *domain.User, ticketID string, input ActionInput) (*ActionResult, error) {
	req := domain.ActionRequest{
		Action:  domain.ParseAction(input.Action),
		Remarks: input.Remarks,
		Rating:  input.Rating,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		result     *ActionResult
		transition domain.Transition
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ticket, err := tx.Tickets().GetByIDForUpdate(ctx, ticketID)
		if err != nil {
			return notFoundOr(err, "ticket")
		}
		creator, err := tx.Users().GetByID(ctx, ticket.CreatedByID)
		if err != nil {
			return notFoundOr(err, "ticket creator")
		}
		manager, err := isManager(ctx, tx, actor.ID)
		if err != nil {
			return err
		}

		transition, err = domain.ResolveTransition(domain.ActionFacts{
			Actor:          actor,
			ActorIsManager: manager,
			Ticket:         ticket,
			Creator:        creator,
		}, req)
		if err != nil {
			return err
		}

		updated := *ticket
		transition.Apply(&updated, req)
		if err := tx.Tickets().Update(ctx, &updated); err != nil {
			return notFoundOr(err, "ticket")
		}

		activity, err := s.activities.LogActivity(ctx, tx, actor.ID, transition.Activity, updated.ID, req.Remarks)
		if err != nil {
			return err
		}

		result = &ActionResult{
			Ticket:   &updated,
			Action:   req.Action,
			Remarks:  *updated.Remarks,
			Rating:   req.Rating,
			Role:     transition.Role,
			Activity: activity,
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("ticket action rejected",
			zap.String("ticket_id", ticketID),
			zap.String("user_id", actor.ID),
			zap.String("action", string(req.Action)),
			zap.String("code", apperrors.CodeOf(err)),
		)
		return nil, err
	}

	s.logger.Info("ticket action performed",
		zap.String("ticket_id", ticketID),
		zap.String("user_id", actor.ID),
		zap.String("role", string(transition.Role)),
		zap.String("from", string(transition.From)),
		zap.String("to", string(transition.To)),
	)
	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketActionPerformed,
		ActorID:  actor.ID,
		TicketID: ticketID,
		Payload: events.TicketActionPayload{
			Action:    req.Action,
			Role:      transition.Role,
			OldStatus: transition.From,
			NewStatus: transition.To,
			Rating:    req.Rating,
		},
	})
	return result, nil
}
