package entity

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent(totalSeats int) *Event {
	now := time.Now()
	e := &Event{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:    "Test Event",
		StartsAt: now.Add(48 * time.Hour),
		Category: CategoryConcert,
		Price:    150,
		IsActive: true,
	}
	e.RegenerateSeats(totalSeats)
	return e
}

// availableSeats must always equal totalSeats minus booked seats.
func assertCounter(t *testing.T, e *Event) {
	t.Helper()
	assert.Equal(t, e.TotalSeats-e.BookedSeatCount(), e.AvailableSeats)
}

func TestGenerateSeatMap_FifteenSeats(t *testing.T) {
	seats := GenerateSeatMap(15)
	require.Len(t, seats, 15)

	expected := []string{
		"A-1", "A-2", "A-3", "A-4", "A-5", "A-6", "A-7", "A-8", "A-9", "A-10",
		"B-1", "B-2", "B-3", "B-4", "B-5",
	}
	for i, label := range expected {
		assert.Equal(t, label, seats[i].Label)
		assert.False(t, seats[i].IsBooked)
		assert.Nil(t, seats[i].BookedBy)
		assert.Nil(t, seats[i].BookingDate)
	}
}

func TestGenerateSeatMap_ExactRows(t *testing.T) {
	seats := GenerateSeatMap(20)
	require.Len(t, seats, 20)
	assert.Equal(t, "B-10", seats[19].Label)
}

func TestGenerateSeatMap_SingleSeat(t *testing.T) {
	seats := GenerateSeatMap(1)
	require.Len(t, seats, 1)
	assert.Equal(t, "A-1", seats[0].Label)
}

func TestGenerateSeatMap_BeyondZ(t *testing.T) {
	// Row 26 (zero-based) is the 27th row and starts at seat 261.
	seats := GenerateSeatMap(261)
	require.Len(t, seats, 261)
	assert.Equal(t, "Z-10", seats[259].Label)
	assert.Equal(t, "AA-1", seats[260].Label)
}

func TestGenerateSeatMap_Deterministic(t *testing.T) {
	a := GenerateSeatMap(55)
	b := GenerateSeatMap(55)
	assert.Equal(t, a, b)
}

func TestBook_Success(t *testing.T) {
	e := newTestEvent(15)
	userID := uuid.New()
	now := time.Now()

	err := e.Book("B-3", userID, now)
	require.NoError(t, err)

	seat := e.SeatByLabel("B-3")
	require.NotNil(t, seat)
	assert.True(t, seat.IsBooked)
	require.NotNil(t, seat.BookedBy)
	assert.Equal(t, userID, *seat.BookedBy)
	require.NotNil(t, seat.BookingDate)
	assert.Equal(t, 14, e.AvailableSeats)
	assertCounter(t, e)
}

func TestBook_SeatNotFound(t *testing.T) {
	e := newTestEvent(15)

	err := e.Book("C-1", uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Equal(t, 15, e.AvailableSeats)
	assertCounter(t, e)
}

func TestBook_AlreadyBooked(t *testing.T) {
	e := newTestEvent(15)
	first := uuid.New()
	require.NoError(t, e.Book("B-3", first, time.Now()))

	// First writer wins; the second booking never touches the seat.
	err := e.Book("B-3", uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrSeatAlreadyBooked)

	seat := e.SeatByLabel("B-3")
	assert.Equal(t, first, *seat.BookedBy)
	assert.Equal(t, 14, e.AvailableSeats)
	assertCounter(t, e)
}

func TestRelease_Success(t *testing.T) {
	e := newTestEvent(15)
	require.NoError(t, e.Book("B-3", uuid.New(), time.Now()))

	err := e.Release("B-3")
	require.NoError(t, err)

	seat := e.SeatByLabel("B-3")
	assert.False(t, seat.IsBooked)
	assert.Nil(t, seat.BookedBy)
	assert.Nil(t, seat.BookingDate)
	assert.Equal(t, 15, e.AvailableSeats)
	assertCounter(t, e)
}

func TestRelease_NotBooked(t *testing.T) {
	e := newTestEvent(15)

	err := e.Release("A-1")
	assert.ErrorIs(t, err, ErrSeatNotBooked)
	assertCounter(t, e)
}

func TestRelease_SeatNotFound(t *testing.T) {
	e := newTestEvent(15)

	err := e.Release("Z-9")
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assertCounter(t, e)
}

func TestCancelThenRebook(t *testing.T) {
	e := newTestEvent(15)
	u1 := uuid.New()
	u2 := uuid.New()

	require.NoError(t, e.Book("B-3", u1, time.Now()))
	require.NoError(t, e.Release("B-3"))
	require.NoError(t, e.Book("B-3", u2, time.Now()))

	seat := e.SeatByLabel("B-3")
	assert.Equal(t, u2, *seat.BookedBy)
	assert.Equal(t, 14, e.AvailableSeats)
	assertCounter(t, e)
}

func TestBook_FillEvent(t *testing.T) {
	e := newTestEvent(15)

	for i := range e.Seats {
		label := e.Seats[i].Label
		require.NoError(t, e.Book(label, uuid.New(), time.Now()), "seat %s", label)
	}

	assert.Equal(t, 0, e.AvailableSeats)
	assertCounter(t, e)

	err := e.Book("A-1", uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrSeatAlreadyBooked)
}

func TestRegenerateSeats_Destructive(t *testing.T) {
	e := newTestEvent(15)
	require.NoError(t, e.Book("A-1", uuid.New(), time.Now()))

	e.RegenerateSeats(25)

	assert.Equal(t, 25, e.TotalSeats)
	assert.Equal(t, 25, e.AvailableSeats)
	assert.Len(t, e.Seats, 25)
	assert.Equal(t, 0, e.BookedSeatCount(), "regeneration discards bookings")
	assertCounter(t, e)
}

func TestRowLetters(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for row, want := range cases {
		assert.Equal(t, want, rowLetters(row), fmt.Sprintf("row %d", row))
	}
}
