package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketActionPerformed EventType = "ticket_action_performed"
	EventFeedbackGiven         EventType = "feedback_given"
	EventManagerAssigned       EventType = "manager_assigned"
)

// AllEventTypes lists every type a subscriber may register for.
func AllEventTypes() []EventType {
	return []EventType{
		EventTicketCreated,
		EventTicketActionPerformed,
		EventFeedbackGiven,
		EventManagerAssigned,
	}
}

// Event represents a domain event emitted after a successful commit.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Type             domain.TicketType   `json:"type"`
	Subtype          string              `json:"subtype"`
	Status           domain.TicketStatus `json:"status"`
	RequiresApproval bool                `json:"requires_approval"`
}

// TicketActionPayload payload.
type TicketActionPayload struct {
	Action    domain.Action        `json:"action"`
	Role      domain.EffectiveRole `json:"role"`
	OldStatus domain.TicketStatus  `json:"old_status"`
	NewStatus domain.TicketStatus  `json:"new_status"`
	Rating    *int                 `json:"rating,omitempty"`
}

// FeedbackGivenPayload payload.
type FeedbackGivenPayload struct {
	FeedbackID string          `json:"feedback_id"`
	GivenToID  string          `json:"given_to_id"`
	TargetRole domain.UserRole `json:"target_role"`
	Rating     int             `json:"rating"`
}

// ManagerAssignedPayload payload.
type ManagerAssignedPayload struct {
	UserID    string `json:"user_id"`
	ManagerID string `json:"manager_id"`
}
