package rating

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

// fakeRatingRepo is an in-memory append-only ledger computing the
// aggregate on every read, like the SQL implementation does.
type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []*model.Rating
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *model.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rating
	r.ratings = append(r.ratings, &copied)
	return nil
}

func (r *fakeRatingRepo) StatsFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statsLocked(doctorID), nil
}

func (r *fakeRatingRepo) StatsForMany(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.RatingStats
	for _, id := range doctorIDs {
		if st := r.statsLocked(id); st.Count > 0 {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) ListFor(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Rating
	for i := len(r.ratings) - 1; i >= 0 && len(out) < limit; i-- {
		if r.ratings[i].DoctorID == doctorID {
			copied := *r.ratings[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) statsLocked(doctorID uuid.UUID) *model.RatingStats {
	var sum, count int
	for _, rating := range r.ratings {
		if rating.DoctorID == doctorID {
			sum += rating.Score
			count++
		}
	}
	stats := &model.RatingStats{DoctorID: doctorID, Count: count}
	if count > 0 {
		avg := math.Round(float64(sum)/float64(count)*100) / 100
		stats.Average = &avg
	}
	return stats
}

type fakeDoctorRepo struct {
	known map[uuid.UUID]bool
}

func (r *fakeDoctorRepo) Search(ctx context.Context, criteria model.DoctorSearchCriteria) ([]*model.DoctorSearchResult, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.known[id], nil
}

func newTestService(doctorIDs ...uuid.UUID) (*Service, *fakeRatingRepo) {
	known := make(map[uuid.UUID]bool)
	for _, id := range doctorIDs {
		known[id] = true
	}
	repo := &fakeRatingRepo{}
	return NewService(repo, &fakeDoctorRepo{known: known}, 0), repo
}

func TestSubmitRejectsOutOfRangeScores(t *testing.T) {
	doctorID := uuid.New()
	svc, _ := newTestService(doctorID)

	for _, score := range []int{-1, 0, 6, 100} {
		_, err := svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: score})
		assert.True(t, errors.HasCode(err, errors.CodeInvalidScore), "score %d should be rejected", score)
	}
}

func TestSubmitAcceptsBoundaryScores(t *testing.T) {
	doctorID := uuid.New()
	svc, _ := newTestService(doctorID)

	for _, score := range []int{1, 5} {
		stats, err := svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: score})
		require.NoError(t, err, "score %d should be accepted", score)
		require.NotNil(t, stats.Average)
	}
}

func TestSubmitUnknownDoctor(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Submit(context.Background(), uuid.New(), &model.SubmitRatingRequest{Score: 3})
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestSubmitTruncatesComment(t *testing.T) {
	doctorID := uuid.New()
	svc, repo := newTestService(doctorID)

	long := strings.Repeat("ä", 600)
	_, err := svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: 4, Comment: long})
	require.NoError(t, err)

	require.Len(t, repo.ratings, 1)
	stored := repo.ratings[0].Comment
	assert.Equal(t, 500, len([]rune(stored)))
	assert.Equal(t, strings.Repeat("ä", 500), stored)
}

func TestSubmitDefaultsAuthorName(t *testing.T) {
	doctorID := uuid.New()
	svc, repo := newTestService(doctorID)

	_, err := svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: 4, AuthorName: "   "})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: 4, AuthorName: "Lea"})
	require.NoError(t, err)

	require.Len(t, repo.ratings, 2)
	assert.Equal(t, model.DefaultAuthorName, repo.ratings[0].AuthorName)
	assert.Equal(t, "Lea", repo.ratings[1].AuthorName)
}

func TestAggregateCommutative(t *testing.T) {
	for _, scores := range [][]int{{4, 5, 3}, {3, 4, 5}, {5, 3, 4}} {
		doctorID := uuid.New()
		svc, _ := newTestService(doctorID)

		var stats *model.RatingStats
		var err error
		for _, score := range scores {
			stats, err = svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: score})
			require.NoError(t, err)
		}

		require.NotNil(t, stats.Average)
		assert.Equal(t, 4.0, *stats.Average)
		assert.Equal(t, 3, stats.Count)
	}
}

func TestAggregateForEmptySentinel(t *testing.T) {
	doctorID := uuid.New()
	svc, _ := newTestService(doctorID)

	stats, err := svc.AggregateFor(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Nil(t, stats.Average)
	assert.Equal(t, 0, stats.Count)
}

func TestAggregatesForFillsMissing(t *testing.T) {
	rated := uuid.New()
	unrated := uuid.New()
	svc, _ := newTestService(rated, unrated)

	_, err := svc.Submit(context.Background(), rated, &model.SubmitRatingRequest{Score: 5})
	require.NoError(t, err)

	stats, err := svc.AggregatesFor(context.Background(), []uuid.UUID{rated, unrated})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, rated, stats[0].DoctorID)
	require.NotNil(t, stats[0].Average)
	assert.Equal(t, 5.0, *stats[0].Average)
	assert.Equal(t, 1, stats[0].Count)

	assert.Equal(t, unrated, stats[1].DoctorID)
	assert.Nil(t, stats[1].Average)
	assert.Equal(t, 0, stats[1].Count)
}

func TestListForNewestFirst(t *testing.T) {
	doctorID := uuid.New()
	svc, _ := newTestService(doctorID)

	for _, score := range []int{1, 2, 3} {
		_, err := svc.Submit(context.Background(), doctorID, &model.SubmitRatingRequest{Score: score})
		require.NoError(t, err)
	}

	ratings, err := svc.ListFor(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, ratings, 3)
	assert.Equal(t, 3, ratings[0].Score)
	assert.Equal(t, 1, ratings[2].Score)
}
