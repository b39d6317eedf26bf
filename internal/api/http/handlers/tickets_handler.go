package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// TicketsHandler exposes ticket creation, queries and actions.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.CreateTicket(c.UserContext(), actor, service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.TicketType,
		HRSubtype:   req.HRType,
		ITSubtype:   req.ITType,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, dto.NewTicketResponse(*ticket))
}

type ticketLister func(ctx context.Context, actor *domain.User, opts service.ListOptions) ([]domain.Ticket, error)

func (h *TicketsHandler) list(c *fiber.Ctx, fn ticketLister) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	tickets, err := fn(c.UserContext(), actor, listOptions(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewTicketList(tickets))
}

// List handles GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	return h.list(c, h.tickets.ListTickets)
}

// ListAction handles GET /api/tickets/action.
func (h *TicketsHandler) ListAction(c *fiber.Ctx) error {
	return h.list(c, h.tickets.ListActionTickets)
}

// ListReports handles GET /api/tickets/manager/action.
func (h *TicketsHandler) ListReports(c *fiber.Ctx) error {
	return h.list(c, h.tickets.ListReportTickets)
}

// ListDepartment handles GET /api/tickets/department.
func (h *TicketsHandler) ListDepartment(c *fiber.Ctx) error {
	return h.list(c, h.tickets.ListDepartmentTickets)
}

// Get handles GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewTicketResponse(*ticket))
}

// Activity handles GET /api/tickets/:id/activity.
func (h *TicketsHandler) Activity(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.tickets.ListTicketActivity(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewActivityList(entries))
}

// PerformAction handles POST /api/tickets/action/:id.
func (h *TicketsHandler) PerformAction(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PerformActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.tickets.PerformAction(c.UserContext(), actor, c.Params("id"), service.ActionInput{
		Action:  req.Action,
		Remarks: req.Remarks,
		Rating:  req.Rating,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewActionResponse(res))
}
