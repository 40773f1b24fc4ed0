package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

type fakeRatingService struct {
	submitted *model.SubmitRatingRequest
	stats     *model.RatingStats
	ratings   []*model.Rating
	batchIDs  []uuid.UUID
	err       error
}

func (f *fakeRatingService) Submit(ctx context.Context, doctorID uuid.UUID, req *model.SubmitRatingRequest) (*model.RatingStats, error) {
	if req.Score < model.MinScore || req.Score > model.MaxScore {
		return nil, errors.InvalidScore("score must be an integer between 1 and 5", nil)
	}
	f.submitted = req
	return f.stats, f.err
}

func (f *fakeRatingService) AggregateFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error) {
	return f.stats, f.err
}

func (f *fakeRatingService) AggregatesFor(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error) {
	f.batchIDs = doctorIDs
	var out []*model.RatingStats
	for _, id := range doctorIDs {
		out = append(out, &model.RatingStats{DoctorID: id})
	}
	return out, f.err
}

func (f *fakeRatingService) ListFor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error) {
	return f.ratings, f.err
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSubmitInvalidScore(t *testing.T) {
	engine := setupRouter(&fakeRatingService{})

	for _, payload := range []string{`{"score":0}`, `{"score":6}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/"+uuid.New().String()+"/ratings", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SCORE", decode(t, w)["code"])
	}
}

func TestSubmitInvalidDoctorID(t *testing.T) {
	engine := setupRouter(&fakeRatingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/abc/ratings", strings.NewReader(`{"score":4}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, w)["code"])
}

func TestSubmitSuccess(t *testing.T) {
	avg := 4.5
	svc := &fakeRatingService{stats: &model.RatingStats{Average: &avg, Count: 2}}
	engine := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/"+uuid.New().String()+"/ratings",
		strings.NewReader(`{"score":5,"comment":"sehr gut","author_name":"Lea"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 4.5, data["average"])
	assert.Equal(t, float64(2), data["count"])
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "sehr gut", svc.submitted.Comment)
}

func TestEmptyAggregateSentinelOnWire(t *testing.T) {
	svc := &fakeRatingService{stats: &model.RatingStats{DoctorID: uuid.New()}, ratings: []*model.Rating{}}
	engine := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+svc.stats.DoctorID.String()+"/ratings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The empty aggregate must serialize as null, not 0.0.
	assert.Contains(t, w.Body.String(), `"average":null`)
}

func TestBatchStats(t *testing.T) {
	svc := &fakeRatingService{}
	engine := setupRouter(svc)

	id1, id2 := uuid.New(), uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings/stats?ids="+id1.String()+","+id2.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{id1, id2}, svc.batchIDs)
}

func TestBatchStatsMissingIDs(t *testing.T) {
	engine := setupRouter(&fakeRatingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings/stats", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchStatsInvalidID(t *testing.T) {
	engine := setupRouter(&fakeRatingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings/stats?ids=abc", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
