package domain

import "time"

// ActivityType captures which transition an audit entry records.
type ActivityType string

const (
	ActivityTicketApproved ActivityType = "TICKET_APPROVED"
	ActivityTicketRejected ActivityType = "TICKET_REJECTED"
	ActivityTicketClosed   ActivityType = "TICKET_CLOSED"
	ActivityTicketReopened ActivityType = "TICKET_REOPENED"
)

// Activity is an immutable audit trail entry. Entries are only ever appended;
// the seed reset is the sole path that removes them.
type Activity struct {
	ID        string
	UserID    string
	Type      ActivityType
	TicketID  string
	Message   *string
	CreatedAt time.Time
}
