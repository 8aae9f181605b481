package repository

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrTicketStatusConflict reports that a status-guarded ticket write found
// the row already moved by a concurrent writer. Callers re-read the ticket
// to learn which state won.
var ErrTicketStatusConflict = errors.New("ticket status changed concurrently")

// EventTicketStats aggregates the ticket ledger for one event. Read-only
// reporting data; never feeds back into booking decisions.
type EventTicketStats struct {
	EventID        uuid.UUID
	BookedCount    int64
	CheckedInCount int64
	CancelledCount int64
	Revenue        float64
}

type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Ticket, error)

	// ActiveExists reports whether a non-cancelled ticket already references
	// the (event, user, seat) triple. The coordinator's double-submit guard.
	ActiveExists(ctx context.Context, eventID, userID uuid.UUID, seatLabel string) (bool, error)
	CountActiveByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)

	// Update persists the ticket's status fields guarded by the status the
	// ticket was loaded with; ErrTicketStatusConflict when a concurrent
	// writer moved the ticket first.
	Update(ctx context.Context, ticket *entity.Ticket, fromStatus entity.TicketStatus) error
	EventStats(ctx context.Context, eventID uuid.UUID) (*EventTicketStats, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, event_id, user_id, seat_label, price, status, booking_date,
	       cancelled_at, checked_in_at, verification_payload, created_at, updated_at`

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicketRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryTickets(ctx, query, userID, limit, offset)
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *ticketRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE event_id = $1
		ORDER BY booking_date
	`

	return r.queryTickets(ctx, query, eventID)
}

func (r *ticketRepository) ActiveExists(ctx context.Context, eventID, userID uuid.UUID, seatLabel string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE event_id = $1 AND user_id = $2 AND seat_label = $3 AND status != 'cancelled'
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, eventID, userID, seatLabel).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active ticket",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("seat_label", seatLabel),
		)
		return false, fmt.Errorf("check active ticket for seat %s: %w", seatLabel, err)
	}

	return exists, nil
}

func (r *ticketRepository) CountActiveByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND status != 'cancelled'`

	var count int64
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		r.log.Error("Failed to count active tickets",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("count active tickets for event %s: %w", eventID.String(), err)
	}

	return count, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket, fromStatus entity.TicketStatus) error {
	query := `
		UPDATE tickets
		SET status = $2, cancelled_at = $3, checked_in_at = $4, updated_at = $5
		WHERE id = $1 AND status = $6
	`

	result, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.Status,
		ticket.CancelledAt,
		ticket.CheckedInAt,
		ticket.UpdatedAt,
		fromStatus,
	)

	if err != nil {
		r.log.Error("Failed to update ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("update ticket %s: %w", ticket.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrTicketStatusConflict
	}

	return nil
}

func (r *ticketRepository) EventStats(ctx context.Context, eventID uuid.UUID) (*EventTicketStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'booked'),
			COUNT(*) FILTER (WHERE status = 'checked_in'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(price) FILTER (WHERE status != 'cancelled'), 0)
		FROM tickets
		WHERE event_id = $1
	`

	stats := &EventTicketStats{EventID: eventID}
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&stats.BookedCount,
		&stats.CheckedInCount,
		&stats.CancelledCount,
		&stats.Revenue,
	)
	if err != nil {
		r.log.Error("Failed to aggregate ticket stats",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("ticket stats for event %s: %w", eventID.String(), err)
	}

	return stats, nil
}

func (r *ticketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*entity.Ticket, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query tickets", zap.Error(err))
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read ticket rows", zap.Error(err))
		return nil, fmt.Errorf("read ticket rows: %w", err)
	}

	return tickets, nil
}

func scanTicketRow(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.SeatLabel,
		&ticket.Price,
		&ticket.Status,
		&ticket.BookingDate,
		&ticket.CancelledAt,
		&ticket.CheckedInAt,
		&ticket.VerificationPayload,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}
