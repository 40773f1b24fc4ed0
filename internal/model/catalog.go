package model

import (
	"github.com/google/uuid"
)

// Specialty is immutable reference data created at provisioning time.
type Specialty struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Code string    `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
}

// Location is a practice location. Doctors are linked to locations
// via the doctor_locations association.
type Location struct {
	ID     uuid.UUID `db:"id" json:"id"`
	City   string    `db:"city" json:"city"`
	Zip    string    `db:"zip" json:"zip"`
	Street string    `db:"street" json:"street"`
}

// PracticeAddress is the location shape exposed on the doctor detail.
type PracticeAddress struct {
	City   string `db:"city" json:"city"`
	Zip    string `db:"zip" json:"zip"`
	Street string `db:"street" json:"street"`
}
