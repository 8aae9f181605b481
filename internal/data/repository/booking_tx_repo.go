package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"go.uber.org/zap"
)

// BookingTxRepository commits the two-entity booking change, the event's
// mutated seat map and the ticket ledger row, as one transaction. The event
// write is guarded by the version the aggregate was loaded with, so a racing
// writer makes the whole transaction roll back with ErrVersionConflict and
// neither write becomes visible.
type BookingTxRepository interface {
	CommitBooking(ctx context.Context, event *entity.Event, ticket *entity.Ticket) error
	// CommitCancellation updates the ticket row and, when event is non-nil,
	// the released seat map in the same transaction. A nil event means the
	// seat could not be resolved and the ticket is cancelled on its own.
	CommitCancellation(ctx context.Context, event *entity.Event, ticket *entity.Ticket) error
}

type bookingTxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingTxRepository(db database.PgxIface, log *zap.Logger) BookingTxRepository {
	return &bookingTxRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_tx")),
	}
}

const updateEventSeatsQuery = `
	UPDATE events
	SET available_seats = $2, seats = $3, version = version + 1, updated_at = $4
	WHERE id = $1 AND version = $5
`

func (r *bookingTxRepository) CommitBooking(ctx context.Context, event *entity.Event, ticket *entity.Ticket) error {
	seats, err := json.Marshal(event.Seats)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, updateEventSeatsQuery,
		event.ID,
		event.AvailableSeats,
		seats,
		ticket.BookingDate,
		event.Version,
	)
	if err != nil {
		r.log.Error("Failed to write seat map in booking tx",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("write seat map for event %s: %w", event.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	insert := `
		INSERT INTO tickets (id, event_id, user_id, seat_label, price, status, booking_date,
		                     verification_payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, insert,
		ticket.ID,
		ticket.EventID,
		ticket.UserID,
		ticket.SeatLabel,
		ticket.Price,
		ticket.Status,
		ticket.BookingDate,
		ticket.VerificationPayload,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert ticket in booking tx",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("insert ticket %s: %w", ticket.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}

	event.Version++
	return nil
}

func (r *bookingTxRepository) CommitCancellation(ctx context.Context, event *entity.Event, ticket *entity.Ticket) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancellation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if event != nil {
		seats, err := json.Marshal(event.Seats)
		if err != nil {
			return fmt.Errorf("marshal seat map: %w", err)
		}

		result, err := tx.Exec(ctx, updateEventSeatsQuery,
			event.ID,
			event.AvailableSeats,
			seats,
			ticket.UpdatedAt,
			event.Version,
		)
		if err != nil {
			r.log.Error("Failed to write seat map in cancellation tx",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
			)
			return fmt.Errorf("write seat map for event %s: %w", event.ID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return ErrVersionConflict
		}
	}

	// Cancellation only moves a booked ticket. Guarding on the prior status
	// makes a concurrent check-in roll the whole transaction back instead of
	// pulling the ticket out of a terminal state.
	update := `
		UPDATE tickets
		SET status = $2, cancelled_at = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := tx.Exec(ctx, update,
		ticket.ID,
		ticket.Status,
		ticket.CancelledAt,
		ticket.UpdatedAt,
		entity.TicketStatusBooked,
	)
	if err != nil {
		r.log.Error("Failed to update ticket in cancellation tx",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("update ticket %s: %w", ticket.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrTicketStatusConflict
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancellation tx: %w", err)
	}

	if event != nil {
		event.Version++
	}
	return nil
}
