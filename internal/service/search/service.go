package search

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

// MaxResults caps the directory result set, bounding the fan-out into
// the rating and availability enrichment calls.
const MaxResults = 100

// Query carries the optional directory predicates; absent ones impose
// no filter. Matching predicates are conjoined.
type Query struct {
	SpecialtyID *uuid.UUID
	City        string
	NameQuery   string
}

type Service struct {
	repo       repository.DoctorRepository
	maxResults int
}

func NewService(repo repository.DoctorRepository, maxResults int) *Service {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Service{repo: repo, maxResults: maxResults}
}

// Search resolves the full matching set up to the cap, ordered by
// (specialty, last name, first name, id). Pagination is applied by the
// caller over this set; the stable ordering keeps page boundaries from
// shifting between identical queries.
func (s *Service) Search(ctx context.Context, q Query) ([]*model.DoctorSearchResult, error) {
	criteria := model.DoctorSearchCriteria{
		SpecialtyID: q.SpecialtyID,
		City:        strings.TrimSpace(q.City),
		NameQuery:   strings.TrimSpace(q.NameQuery),
		Limit:       s.maxResults,
	}

	doctors, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	if doctors == nil {
		doctors = []*model.DoctorSearchResult{}
	}
	return doctors, nil
}
