package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentSlot is a fixed-duration appointment opportunity for one
// doctor. Slots are created in bulk by provisioning and mutated exactly
// once, when Booked transitions false to true. Booked is terminal.
type AppointmentSlot struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration_min" json:"duration_min"`
	Booked          bool      `db:"booked" json:"booked"`
}

// BookingConfirmation is the snapshot returned after a successful booking.
type BookingConfirmation struct {
	SlotID          uuid.UUID `json:"slot_id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_min"`
}

// BookSlotRequest is the booking payload.
type BookSlotRequest struct {
	SlotID string `json:"slot_id" binding:"required"`
}
