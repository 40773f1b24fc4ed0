package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quickdoc/clinic-api/internal/model"
)

// Create appends one ledger entry and records the rating.created event
// in the same transaction. Ratings are never updated or deleted.
func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	rating.ID = uuid.New()
	rating.CreatedAt = time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO ratings (
				id, doctor_id, score, comment, author_name, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := tx.ExecContext(ctx, query,
			rating.ID,
			rating.DoctorID,
			rating.Score,
			rating.Comment,
			rating.AuthorName,
			rating.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create rating: %w", err)
		}

		payload, err := json.Marshal(rating)
		if err != nil {
			return fmt.Errorf("failed to marshal rating event: %w", err)
		}
		return insertOutboxTx(ctx, tx, &model.OutboxEvent{
			EventType: model.EventRatingCreated,
			Payload:   payload,
		})
	})
}

func (r *ratingRepository) StatsFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error) {
	query := `
		SELECT $1::uuid AS doctor_id,
			   ROUND(AVG(score)::numeric, 2) AS average,
			   COUNT(*) AS count
		FROM ratings
		WHERE doctor_id = $1
	`
	var stats model.RatingStats
	if err := r.db.GetContext(ctx, &stats, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to get rating stats: %w", err)
	}
	return &stats, nil
}

// StatsForMany is a single bulk read so the directory page issues one
// query per result set, not one per doctor.
func (r *ratingRepository) StatsForMany(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error) {
	query := `
		SELECT doctor_id,
			   ROUND(AVG(score)::numeric, 2) AS average,
			   COUNT(*) AS count
		FROM ratings
		WHERE doctor_id = ANY($1)
		GROUP BY doctor_id
	`
	var stats []*model.RatingStats
	if err := r.db.SelectContext(ctx, &stats, query, pq.Array(doctorIDs)); err != nil {
		return nil, fmt.Errorf("failed to get rating stats batch: %w", err)
	}
	return stats, nil
}

func (r *ratingRepository) ListFor(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.Rating, error) {
	query := `
		SELECT id, doctor_id, score, comment, author_name, created_at
		FROM ratings
		WHERE doctor_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	var ratings []*model.Rating
	if err := r.db.SelectContext(ctx, &ratings, query, doctorID, limit); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
