package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TicketType  string `json:"ticketType"`
	HRType      string `json:"hrType"`
	ITType      string `json:"itType"`
}

// PerformActionRequest payload. Action is matched case-insensitively.
type PerformActionRequest struct {
	Action  string `json:"action"`
	Remarks string `json:"remarks"`
	Rating  *int   `json:"rating"`
}

// TicketResponse represents a ticket on the wire.
type TicketResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	TicketType       domain.TicketType   `json:"ticketType"`
	HRType           *domain.HRSubtype   `json:"hrType"`
	ITType           *domain.ITSubtype   `json:"itType"`
	Status           domain.TicketStatus `json:"status"`
	RequiresApproval bool                `json:"requiresApproval"`
	Remarks          *string             `json:"remarks"`
	Rating           *int                `json:"rating"`
	CreatedByID      string              `json:"createdById"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// ActionResponse is returned after a successful ticket action.
type ActionResponse struct {
	Ticket  TicketResponse `json:"ticket"`
	Action  domain.Action  `json:"action"`
	Remarks string         `json:"remarks"`
	Rating  *int           `json:"rating,omitempty"`
}

// ActivityResponse is one audit entry.
type ActivityResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Username  string              `json:"username,omitempty"`
	Type      domain.ActivityType `json:"type"`
	TicketID  string              `json:"ticketId"`
	Message   *string             `json:"message"`
	CreatedAt time.Time           `json:"createdAt"`
}

// NewTicketResponse converts a ticket.
func NewTicketResponse(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		TicketType:       t.Type,
		HRType:           t.HRSubtype,
		ITType:           t.ITSubtype,
		Status:           t.Status,
		RequiresApproval: t.RequiresApproval,
		Remarks:          t.Remarks,
		Rating:           t.Rating,
		CreatedByID:      t.CreatedByID,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// NewTicketList converts tickets.
func NewTicketList(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t))
	}
	return out
}

// NewActionResponse converts an action result.
func NewActionResponse(res *service.ActionResult) ActionResponse {
	return ActionResponse{
		Ticket:  NewTicketResponse(*res.Ticket),
		Action:  res.Action,
		Remarks: res.Remarks,
		Rating:  res.Rating,
	}
}

// NewActivityList converts audit entries.
func NewActivityList(entries []repository.ActivityEntry) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  e.Username,
			Type:      e.Type,
			TicketID:  e.TicketID,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
