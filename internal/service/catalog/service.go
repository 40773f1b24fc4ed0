package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

const (
	specialtiesCacheKey = "specialties"
	citiesCacheKey      = "cities"
)

// Service serves the immutable reference data. Specialties and cities
// never change at runtime, so both lists are cached in-process.
type Service struct {
	repo  repository.CatalogRepository
	cache *cache.Cache
}

func NewService(repo repository.CatalogRepository, ttl, cleanupInterval time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (s *Service) ListSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	if cached, ok := s.cache.Get(specialtiesCacheKey); ok {
		return cached.([]*model.Specialty), nil
	}

	specialties, err := s.repo.ListSpecialties(ctx)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	s.cache.Set(specialtiesCacheKey, specialties, cache.DefaultExpiration)
	return specialties, nil
}

func (s *Service) ListCities(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(citiesCacheKey); ok {
		return cached.([]string), nil
	}

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	s.cache.Set(citiesCacheKey, cities, cache.DefaultExpiration)
	return cities, nil
}

// LocationsFor is not cached: the association fan-out is small and
// per-doctor keys would mostly miss.
func (s *Service) LocationsFor(ctx context.Context, doctorID uuid.UUID) ([]*model.PracticeAddress, error) {
	addresses, err := s.repo.ListDoctorLocations(ctx, doctorID)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	if addresses == nil {
		addresses = []*model.PracticeAddress{}
	}
	return addresses, nil
}
