package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinScore and MaxScore bound a valid rating score.
	MinScore = 1
	MaxScore = 5

	// MaxCommentLength is the stored comment cap. Longer comments are
	// truncated, not rejected; the policy is kept for compatibility.
	MaxCommentLength = 500

	// DefaultAuthorName is used when a rating is submitted without one.
	DefaultAuthorName = "QuickDoc Nutzer:in"
)

// Rating is one append-only ledger entry. Ratings are never updated
// or deleted.
type Rating struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Score      int       `db:"score" json:"score"`
	Comment    string    `db:"comment" json:"comment,omitempty"`
	AuthorName string    `db:"author_name" json:"author_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RatingStats is the derived aggregate, recomputed from the ledger on
// every read. Average is nil when no ratings exist so the empty case
// stays distinguishable from a true 0.0 average on the wire.
type RatingStats struct {
	DoctorID uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Average  *float64  `db:"average" json:"average"`
	Count    int       `db:"count" json:"count"`
}

// SubmitRatingRequest is the rating submission payload. Score is not
// bound as required: a missing score decodes to 0 and fails the range
// check with the score-specific error.
type SubmitRatingRequest struct {
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
	AuthorName string `json:"author_name"`
}
