package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// FeedbackRepository stores employee ratings of HR/IT staff.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	List(ctx context.Context) ([]domain.Feedback, error)
	DeleteAll(ctx context.Context) error
}

type feedbackRepository struct {
	db DBTX
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (rating, comment, given_by_id, given_to_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		feedback.Rating,
		feedback.Comment,
		feedback.GivenByID,
		feedback.GivenToID,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	return translateError(err)
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, rating, comment, given_by_id, given_to_id, created_at
        FROM feedback ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.Feedback{}
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.Rating,
			&fb.Comment,
			&fb.GivenByID,
			&fb.GivenToID,
			&fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}

func (r *feedbackRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM feedback`)
	return translateError(err)
}
