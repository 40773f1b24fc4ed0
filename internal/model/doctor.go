package model

import (
	"github.com/google/uuid"
)

// Doctor is provisioned reference data; the service never mutates it.
type Doctor struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	SpecialtyID uuid.UUID `db:"specialty_id" json:"specialty_id"`
	Phone       string    `db:"phone" json:"phone"`
	Email       string    `db:"email" json:"email"`
}

// DoctorSearchResult is a doctor row joined with its specialty name,
// as returned by the directory search.
type DoctorSearchResult struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Specialty string    `db:"specialty" json:"specialty"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
}

// DoctorSearchCriteria is the conjunction of optional predicates.
// A nil/empty field imposes no filter.
type DoctorSearchCriteria struct {
	SpecialtyID *uuid.UUID
	City        string
	NameQuery   string
	Limit       int
}
