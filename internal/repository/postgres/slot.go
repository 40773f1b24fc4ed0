package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/repository"
)

func (r *slotRepository) ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, start_time, duration_min, booked
		FROM appointment_slots
		WHERE doctor_id = $1 AND start_time >= $2
		ORDER BY start_time
		LIMIT $3
	`
	var slots []*model.AppointmentSlot
	if err := r.db.SelectContext(ctx, &slots, query, doctorID, from, limit); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) NextFree(ctx context.Context, doctorID uuid.UUID, from time.Time) (*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, start_time, duration_min, booked
		FROM appointment_slots
		WHERE doctor_id = $1 AND booked = FALSE AND start_time >= $2
		ORDER BY start_time
		LIMIT 1
	`
	var slot model.AppointmentSlot
	err := r.db.GetContext(ctx, &slot, query, doctorID, from)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next free slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, start_time, duration_min, booked
		FROM appointment_slots
		WHERE id = $1
	`
	var slot model.AppointmentSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

// Book flips the slot to booked with a single conditional update, so the
// check and the write cannot interleave with a concurrent booker. The
// confirmation event is written to the outbox in the same transaction.
func (r *slotRepository) Book(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	var slot model.AppointmentSlot

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE appointment_slots
			SET booked = TRUE
			WHERE id = $1 AND booked = FALSE
			RETURNING id, doctor_id, start_time, duration_min, booked
		`
		err := tx.GetContext(ctx, &slot, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			// Zero rows: either the slot does not exist or it is already
			// booked. A follow-up read tells the two apart; the booked
			// flag is monotone so the answer cannot go stale.
			var booked bool
			err := tx.GetContext(ctx, &booked, `SELECT booked FROM appointment_slots WHERE id = $1`, id)
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrSlotNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to inspect slot state: %w", err)
			}
			return repository.ErrSlotTaken
		}
		if err != nil {
			return fmt.Errorf("failed to book slot: %w", err)
		}

		payload, err := json.Marshal(model.BookingConfirmation{
			SlotID:          slot.ID,
			DoctorID:        slot.DoctorID,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal booking event: %w", err)
		}
		return insertOutboxTx(ctx, tx, &model.OutboxEvent{
			EventType: model.EventBookingConfirmed,
			Payload:   payload,
		})
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
