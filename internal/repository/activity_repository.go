package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ActivityEntry is an audit entry joined with the actor's username.
type ActivityEntry struct {
	domain.Activity
	Username string
}

// ActivityRepository stores the append-only audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	List(ctx context.Context) ([]ActivityEntry, error)
	ListByTicket(ctx context.Context, ticketID string) ([]ActivityEntry, error)
	DeleteAll(ctx context.Context) error
}

type activityRepository struct {
	db DBTX
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO activities (user_id, type, ticket_id, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		activity.UserID,
		activity.Type,
		activity.TicketID,
		activity.Message,
	).Scan(&activity.ID, &activity.CreatedAt)
	return translateError(err)
}

func (r *activityRepository) List(ctx context.Context) ([]ActivityEntry, error) {
	const query = `
        SELECT a.id, a.user_id, a.type, a.ticket_id, a.message, a.created_at, u.username
        FROM activities a JOIN users u ON u.id = a.user_id
        ORDER BY a.created_at DESC`
	return r.query(ctx, query)
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string) ([]ActivityEntry, error) {
	const query = `
        SELECT a.id, a.user_id, a.type, a.ticket_id, a.message, a.created_at, u.username
        FROM activities a JOIN users u ON u.id = a.user_id
        WHERE a.ticket_id=$1
        ORDER BY a.created_at ASC`
	return r.query(ctx, query, ticketID)
}

func (r *activityRepository) query(ctx context.Context, query string, args ...any) ([]ActivityEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []ActivityEntry{}
	for rows.Next() {
		var entry ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.TicketID,
			&entry.Message,
			&entry.CreatedAt,
			&entry.Username,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *activityRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM activities`)
	return translateError(err)
}
