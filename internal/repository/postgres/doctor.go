package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
)

func (r *doctorRepository) Search(ctx context.Context, criteria model.DoctorSearchCriteria) ([]*model.DoctorSearchResult, error) {
	query := `
		SELECT d.id, d.first_name, d.last_name, s.name AS specialty,
			   d.phone, d.email
		FROM doctors d
		JOIN specialties s ON s.id = d.specialty_id
	`
	var clauses []string
	var args []interface{}

	if criteria.SpecialtyID != nil {
		args = append(args, *criteria.SpecialtyID)
		clauses = append(clauses, fmt.Sprintf("d.specialty_id = $%d", len(args)))
	}

	if criteria.City != "" {
		args = append(args, criteria.City)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM doctor_locations dl
			JOIN locations l ON l.id = dl.location_id
			WHERE dl.doctor_id = d.id AND l.city = $%d
		)`, len(args)))
	}

	if criteria.NameQuery != "" {
		// Substring match over the concatenated full name, matching the
		// directory's documented search semantics.
		args = append(args, "%"+strings.ToLower(criteria.NameQuery)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(d.first_name || ' ' || d.last_name) LIKE $%d", len(args)))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	// Stable ordering with id as the final tie-break so page boundaries
	// never shift between identical queries.
	args = append(args, criteria.Limit)
	query += fmt.Sprintf(`
		ORDER BY s.name, d.last_name, d.first_name, d.id
		LIMIT $%d
	`, len(args))

	var doctors []*model.DoctorSearchResult
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check doctor existence: %w", err)
	}
	return exists, nil
}
