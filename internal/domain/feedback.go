package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is an employee's rating of an HR or IT staff member.
type Feedback struct {
	ID        string
	Rating    int
	Comment   *string
	GivenByID string
	GivenToID string
	CreatedAt time.Time
}

// ValidRating reports whether r is within 1..5.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
