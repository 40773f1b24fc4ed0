package availability

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

const DefaultSlotLimit = 50

// Service is the sole authority on slot state. Every free-to-booked
// transition goes through Book; there is no release or cancel path.
type Service struct {
	repo      repository.SlotRepository
	slotLimit int
}

func NewService(repo repository.SlotRepository, slotLimit int) *Service {
	if slotLimit <= 0 {
		slotLimit = DefaultSlotLimit
	}
	return &Service{repo: repo, slotLimit: slotLimit}
}

// ListUpcomingSlots returns the doctor's slots at or after from, booked
// ones included so the caller can render them disabled. An unknown
// doctor yields an empty list, not an error.
func (s *Service) ListUpcomingSlots(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*model.AppointmentSlot, error) {
	slots, err := s.repo.ListUpcoming(ctx, doctorID, from, s.slotLimit)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	if slots == nil {
		slots = []*model.AppointmentSlot{}
	}
	return slots, nil
}

// NextFreeSlot returns the earliest free slot at or after from, or nil
// when the doctor has none.
func (s *Service) NextFreeSlot(ctx context.Context, doctorID uuid.UUID, from time.Time) (*model.AppointmentSlot, error) {
	slot, err := s.repo.NextFree(ctx, doctorID, from)
	if err != nil {
		return nil, errors.FromStore(err)
	}
	return slot, nil
}

// Book attempts the free-to-booked transition. The store performs the
// check-and-set atomically, so of any number of concurrent callers
// exactly one succeeds; the rest get AlreadyBooked whether they raced
// or acted on stale slot state.
func (s *Service) Book(ctx context.Context, slotID uuid.UUID) (*model.BookingConfirmation, error) {
	slot, err := s.repo.Book(ctx, slotID)
	if err != nil {
		switch {
		case stderrors.Is(err, repository.ErrSlotNotFound):
			return nil, errors.NotFound("slot", err)
		case stderrors.Is(err, repository.ErrSlotTaken):
			return nil, errors.AlreadyBooked(err)
		default:
			return nil, errors.FromStore(err)
		}
	}

	return &model.BookingConfirmation{
		SlotID:          slot.ID,
		DoctorID:        slot.DoctorID,
		StartTime:       slot.StartTime,
		DurationMinutes: slot.DurationMinutes,
	}, nil
}
