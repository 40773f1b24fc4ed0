package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
)

// Sentinel errors surfaced by repositories for domain outcomes the
// services must tell apart.
var (
	ErrSlotNotFound   = errors.New("slot not found")
	ErrSlotTaken      = errors.New("slot already booked")
	ErrDoctorNotFound = errors.New("doctor not found")
)

// CatalogRepository serves the immutable reference data.
type CatalogRepository interface {
	ListSpecialties(ctx context.Context) ([]*model.Specialty, error)
	ListCities(ctx context.Context) ([]string, error)
	ListDoctorLocations(ctx context.Context, doctorID uuid.UUID) ([]*model.PracticeAddress, error)
}

// DoctorRepository resolves the directory result set.
type DoctorRepository interface {
	Search(ctx context.Context, criteria model.DoctorSearchCriteria) ([]*model.DoctorSearchResult, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SlotRepository owns appointment slot state. Book performs the single
// legal free-to-booked transition as one atomic conditional update; two
// concurrent calls on the same slot must never both succeed.
type SlotRepository interface {
	ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentSlot, error)
	NextFree(ctx context.Context, doctorID uuid.UUID, from time.Time) (*model.AppointmentSlot, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error)
	Book(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error)
}

// RatingRepository is the append-only rating ledger. Aggregates are
// recomputed from the ledger on every read.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	StatsFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error)
	StatsForMany(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error)
	ListFor(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.Rating, error)
}

// OutboxRepository stores domain events pending publication.
type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
}
