package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/logger"
)

// Availability is the slot-state authority the booking use case
// delegates to.
type Availability interface {
	Book(ctx context.Context, slotID uuid.UUID) (*model.BookingConfirmation, error)
}

// Service implements the externally visible "book appointment" use case.
// It validates the request and delegates; it never retries a conflict.
// The caller decides whether to offer an alternative slot.
type Service struct {
	availability Availability
	logger       *logger.Logger
}

func NewService(availability Availability, logger *logger.Logger) *Service {
	return &Service{availability: availability, logger: logger}
}

func (s *Service) BookSlot(ctx context.Context, rawSlotID string) (*model.BookingConfirmation, error) {
	if rawSlotID == "" {
		return nil, errors.BadRequest("slot_id is required", nil)
	}
	slotID, err := uuid.Parse(rawSlotID)
	if err != nil {
		return nil, errors.BadRequest("invalid slot_id", err)
	}

	confirmation, err := s.availability.Book(ctx, slotID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("slot booked", "slot_id", confirmation.SlotID.String(), "doctor_id", confirmation.DoctorID.String())
	return confirmation, nil
}
