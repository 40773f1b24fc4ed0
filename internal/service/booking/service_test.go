package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/logger"
)

type fakeAvailability struct {
	calls        int
	confirmation *model.BookingConfirmation
	err          error
}

func (f *fakeAvailability) Book(ctx context.Context, slotID uuid.UUID) (*model.BookingConfirmation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.confirmation, nil
}

func newTestService(availability *fakeAvailability) *Service {
	return NewService(availability, logger.NewLogger(nil))
}

func TestBookSlotMissingID(t *testing.T) {
	availability := &fakeAvailability{}
	svc := newTestService(availability)

	_, err := svc.BookSlot(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.CodeBadRequest))
	assert.Zero(t, availability.calls)
}

func TestBookSlotMalformedID(t *testing.T) {
	availability := &fakeAvailability{}
	svc := newTestService(availability)

	_, err := svc.BookSlot(context.Background(), "not-a-uuid")
	assert.True(t, errors.HasCode(err, errors.CodeBadRequest))
	assert.Zero(t, availability.calls)
}

func TestBookSlotSuccess(t *testing.T) {
	slotID := uuid.New()
	availability := &fakeAvailability{
		confirmation: &model.BookingConfirmation{
			SlotID:          slotID,
			DoctorID:        uuid.New(),
			StartTime:       time.Now().Add(time.Hour),
			DurationMinutes: 20,
		},
	}
	svc := newTestService(availability)

	confirmation, err := svc.BookSlot(context.Background(), slotID.String())
	require.NoError(t, err)
	assert.Equal(t, slotID, confirmation.SlotID)
	assert.Equal(t, 1, availability.calls)
}

func TestBookSlotConflictIsNotRetried(t *testing.T) {
	availability := &fakeAvailability{err: errors.AlreadyBooked(nil)}
	svc := newTestService(availability)

	_, err := svc.BookSlot(context.Background(), uuid.New().String())
	assert.True(t, errors.HasCode(err, errors.CodeAlreadyBooked))
	assert.Equal(t, 1, availability.calls)
}
