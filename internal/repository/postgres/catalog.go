package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
)

func (r *catalogRepository) ListSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	query := `
		SELECT id, code, name
		FROM specialties
		ORDER BY name
	`
	var specialties []*model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query); err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (r *catalogRepository) ListCities(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT city
		FROM locations
		ORDER BY city
	`
	var cities []string
	if err := r.db.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (r *catalogRepository) ListDoctorLocations(ctx context.Context, doctorID uuid.UUID) ([]*model.PracticeAddress, error) {
	query := `
		SELECT l.city, l.zip, l.street
		FROM doctor_locations dl
		JOIN locations l ON l.id = dl.location_id
		WHERE dl.doctor_id = $1
		ORDER BY l.city
	`
	var addresses []*model.PracticeAddress
	if err := r.db.SelectContext(ctx, &addresses, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor locations: %w", err)
	}
	return addresses, nil
}
