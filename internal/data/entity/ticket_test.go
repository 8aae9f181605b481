package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTicket() *Ticket {
	now := time.Now()
	return &Ticket{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventID:     uuid.New(),
		UserID:      uuid.New(),
		SeatLabel:   "B-3",
		Price:       150,
		Status:      TicketStatusBooked,
		BookingDate: now,
	}
}

func TestTicketCancel(t *testing.T) {
	ticket := newTestTicket()
	now := time.Now()

	require.NoError(t, ticket.Cancel(now))
	assert.Equal(t, TicketStatusCancelled, ticket.Status)
	require.NotNil(t, ticket.CancelledAt)
	assert.Equal(t, now, *ticket.CancelledAt)
	assert.False(t, ticket.IsActive())
}

func TestTicketCancel_AlreadyCancelled(t *testing.T) {
	ticket := newTestTicket()
	require.NoError(t, ticket.Cancel(time.Now()))

	err := ticket.Cancel(time.Now())
	assert.ErrorIs(t, err, ErrTicketAlreadyCancelled)
}

func TestTicketCancel_AfterCheckIn(t *testing.T) {
	ticket := newTestTicket()
	require.NoError(t, ticket.CheckIn(time.Now()))

	err := ticket.Cancel(time.Now())
	assert.ErrorIs(t, err, ErrTicketNotCancellable)
	assert.Equal(t, TicketStatusCheckedIn, ticket.Status)
}

func TestTicketCheckIn(t *testing.T) {
	ticket := newTestTicket()
	now := time.Now()

	require.NoError(t, ticket.CheckIn(now))
	assert.Equal(t, TicketStatusCheckedIn, ticket.Status)
	require.NotNil(t, ticket.CheckedInAt)
	assert.True(t, ticket.IsActive())
}

func TestTicketCheckIn_Twice(t *testing.T) {
	ticket := newTestTicket()
	require.NoError(t, ticket.CheckIn(time.Now()))

	err := ticket.CheckIn(time.Now())
	assert.ErrorIs(t, err, ErrTicketNotCheckable)
}

func TestTicketCheckIn_Cancelled(t *testing.T) {
	ticket := newTestTicket()
	require.NoError(t, ticket.Cancel(time.Now()))

	err := ticket.CheckIn(time.Now())
	assert.ErrorIs(t, err, ErrTicketNotCheckable)
	assert.Equal(t, TicketStatusCancelled, ticket.Status)
}
