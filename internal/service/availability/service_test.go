package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
	"github.com/quickdoc/clinic-api/pkg/errors"
)

// fakeSlotRepo emulates the store's atomic conditional update: the
// check and the write happen under one lock, as the SQL row update
// does under row locking.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*model.AppointmentSlot
}

func newFakeSlotRepo(slots ...*model.AppointmentSlot) *fakeSlotRepo {
	repo := &fakeSlotRepo{slots: make(map[uuid.UUID]*model.AppointmentSlot)}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return repo
}

func (r *fakeSlotRepo) ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.AppointmentSlot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && !s.StartTime.Before(from) {
			copied := *s
			out = append(out, &copied)
		}
	}
	sortSlots(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSlotRepo) NextFree(ctx context.Context, doctorID uuid.UUID, from time.Time) (*model.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *model.AppointmentSlot
	for _, s := range r.slots {
		if s.DoctorID != doctorID || s.Booked || s.StartTime.Before(from) {
			continue
		}
		if best == nil || s.StartTime.Before(best.StartTime) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (r *fakeSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) Book(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	if s.Booked {
		return nil, repository.ErrSlotTaken
	}
	s.Booked = true
	copied := *s
	return &copied, nil
}

func sortSlots(slots []*model.AppointmentSlot) {
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slots[j].StartTime.Before(slots[j-1].StartTime); j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}
}

func slotAt(doctorID uuid.UUID, start time.Time, booked bool) *model.AppointmentSlot {
	return &model.AppointmentSlot{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		StartTime:       start,
		DurationMinutes: 20,
		Booked:          booked,
	}
}

func TestBookExclusivity(t *testing.T) {
	doctorID := uuid.New()
	slot := slotAt(doctorID, time.Now().Add(time.Hour), false)
	svc := NewService(newFakeSlotRepo(slot), 0)

	const callers = 50
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), slot.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		require.True(t, errors.HasCode(err, errors.CodeAlreadyBooked), "unexpected error: %v", err)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
}

func TestBookMonotonicity(t *testing.T) {
	doctorID := uuid.New()
	slot := slotAt(doctorID, time.Now().Add(time.Hour), false)
	repo := newFakeSlotRepo(slot)
	svc := NewService(repo, 0)

	confirmation, err := svc.Book(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, slot.ID, confirmation.SlotID)
	assert.Equal(t, doctorID, confirmation.DoctorID)

	// Booked is terminal: a second attempt conflicts, and every read
	// keeps reporting the slot as booked.
	_, err = svc.Book(context.Background(), slot.ID)
	assert.True(t, errors.HasCode(err, errors.CodeAlreadyBooked))

	stored, err := repo.Get(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.True(t, stored.Booked)
}

func TestBookNotFound(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), 0)

	_, err := svc.Book(context.Background(), uuid.New())
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestNextFreeSlotSkipsBooked(t *testing.T) {
	doctorID := uuid.New()
	now := time.Now()
	t1 := slotAt(doctorID, now.Add(1*time.Hour), true)
	t2 := slotAt(doctorID, now.Add(2*time.Hour), false)
	t3 := slotAt(doctorID, now.Add(3*time.Hour), false)
	svc := NewService(newFakeSlotRepo(t1, t2, t3), 0)

	slot, err := svc.NextFreeSlot(context.Background(), doctorID, now)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, t2.ID, slot.ID)
}

func TestNextFreeSlotNone(t *testing.T) {
	doctorID := uuid.New()
	now := time.Now()
	svc := NewService(newFakeSlotRepo(slotAt(doctorID, now.Add(time.Hour), true)), 0)

	slot, err := svc.NextFreeSlot(context.Background(), doctorID, now)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestListUpcomingSlotsIncludesBooked(t *testing.T) {
	doctorID := uuid.New()
	now := time.Now()
	past := slotAt(doctorID, now.Add(-time.Hour), false)
	booked := slotAt(doctorID, now.Add(1*time.Hour), true)
	free := slotAt(doctorID, now.Add(2*time.Hour), false)
	svc := NewService(newFakeSlotRepo(past, booked, free), 0)

	slots, err := svc.ListUpcomingSlots(context.Background(), doctorID, now)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, booked.ID, slots[0].ID)
	assert.Equal(t, free.ID, slots[1].ID)
}

func TestListUpcomingSlotsUnknownDoctor(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), 0)

	slots, err := svc.ListUpcomingSlots(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}
