package rating

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

const DefaultListLimit = 20

// Service appends ledger entries and computes aggregates on read.
type Service struct {
	repo      repository.RatingRepository
	doctors   repository.DoctorRepository
	listLimit int
}

func NewService(repo repository.RatingRepository, doctors repository.DoctorRepository, listLimit int) *Service {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Service{repo: repo, doctors: doctors, listLimit: listLimit}
}

// Submit validates and appends a rating, then returns the doctor's
// fresh aggregate. Scores outside [1,5] are rejected outright, never
// clamped. Overlong comments are truncated to 500 characters; the
// silent truncation is the documented policy.
func (s *Service) Submit(ctx context.Context, doctorID uuid.UUID, req *model.SubmitRatingRequest) (*model.RatingStats, error) {
	if req.Score < model.MinScore || req.Score > model.MaxScore {
		return nil, errors.InvalidScore("score must be an integer between 1 and 5", nil)
	}

	exists, err := s.doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	if !exists {
		return nil, errors.NotFound("doctor", repository.ErrDoctorNotFound)
	}

	author := strings.TrimSpace(req.AuthorName)
	if author == "" {
		author = model.DefaultAuthorName
	}

	rating := &model.Rating{
		DoctorID:   doctorID,
		Score:      req.Score,
		Comment:    truncate(req.Comment, model.MaxCommentLength),
		AuthorName: author,
	}
	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, errors.FromStore(err)
	}

	stats, err := s.repo.StatsFor(ctx, doctorID)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	return stats, nil
}

// AggregateFor returns the derived (average, count) pair. A doctor with
// no ratings gets a nil average and zero count, which must stay
// distinguishable from a numeric 0.0 on the wire.
func (s *Service) AggregateFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error) {
	stats, err := s.repo.StatsFor(ctx, doctorID)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	return stats, nil
}

// AggregatesFor is the batch form used by the directory page. It issues
// one bulk read and fills ids without ratings with the empty sentinel,
// so every requested id appears in the result.
func (s *Service) AggregatesFor(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error) {
	if len(doctorIDs) == 0 {
		return []*model.RatingStats{}, nil
	}

	found, err := s.repo.StatsForMany(ctx, doctorIDs)
	if err != nil {
		return nil, errors.FromStore(err)
	}

	byID := make(map[uuid.UUID]*model.RatingStats, len(found))
	for _, st := range found {
		byID[st.DoctorID] = st
	}

	stats := make([]*model.RatingStats, 0, len(doctorIDs))
	for _, id := range doctorIDs {
		if st, ok := byID[id]; ok {
			stats = append(stats, st)
			continue
		}
		stats = append(stats, &model.RatingStats{DoctorID: id})
	}
	return stats, nil
}

// ListFor returns the most recent ratings, newest first.
func (s *Service) ListFor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error) {
	ratings, err := s.repo.ListFor(ctx, doctorID, s.listLimit)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	if ratings == nil {
		ratings = []*model.Rating{}
	}
	return ratings, nil
}

// truncate caps s at max characters, not bytes, so a multi-byte
// comment is never cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
