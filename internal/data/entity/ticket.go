package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "booked"
	TicketStatusCheckedIn TicketStatus = "checked_in"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Ticket is the durable record of an issued booking, kept separately from the
// event's seat map. Price is captured at booking time and never follows later
// price changes on the event.
type Ticket struct {
	Base
	EventID             uuid.UUID    `db:"event_id"`
	UserID              uuid.UUID    `db:"user_id"`
	SeatLabel           string       `db:"seat_label"`
	Price               float64      `db:"price"`
	Status              TicketStatus `db:"status"`
	BookingDate         time.Time    `db:"booking_date"`
	CancelledAt         *time.Time   `db:"cancelled_at"`
	CheckedInAt         *time.Time   `db:"checked_in_at"`
	VerificationPayload string       `db:"verification_payload"`
}

// IsActive reports whether the ticket still holds its seat.
func (t *Ticket) IsActive() bool {
	return t.Status != TicketStatusCancelled
}

// Cancel moves the ticket to its cancelled terminal state.
func (t *Ticket) Cancel(now time.Time) error {
	switch t.Status {
	case TicketStatusCancelled:
		return ErrTicketAlreadyCancelled
	case TicketStatusCheckedIn:
		return ErrTicketNotCancellable
	}

	t.Status = TicketStatusCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	return nil
}

// CheckIn moves the ticket to its checked-in terminal state. Only a booked
// ticket can be checked in; re-check-in and check-in of a cancelled ticket
// both fail.
func (t *Ticket) CheckIn(now time.Time) error {
	if t.Status != TicketStatusBooked {
		return ErrTicketNotCheckable
	}

	t.Status = TicketStatusCheckedIn
	t.CheckedInAt = &now
	t.UpdatedAt = now
	return nil
}
