package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateFeedbackRequest rates an HR or IT user by username.
type CreateFeedbackRequest struct {
	GivenTo     string `json:"given_to"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// FeedbackResponse represents stored feedback.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	GivenByID string    `json:"givenById"`
	GivenToID string    `json:"givenToId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFeedbackResponse converts feedback.
func NewFeedbackResponse(f domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		GivenByID: f.GivenByID,
		GivenToID: f.GivenToID,
		CreatedAt: f.CreatedAt,
	}
}

// NewFeedbackList converts feedback rows.
func NewFeedbackList(rows []domain.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(rows))
	for _, f := range rows {
		out = append(out, NewFeedbackResponse(f))
	}
	return out
}
