package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type EventCategory string

const (
	CategoryConcert    EventCategory = "concert"
	CategoryTheatre    EventCategory = "theatre"
	CategorySport      EventCategory = "sport"
	CategoryConference EventCategory = "conference"
	CategoryOther      EventCategory = "other"
)

const (
	// SeatRowWidth is the number of seats per row in a generated seat map.
	SeatRowWidth = 10

	// MaxTotalSeats bounds the seat map size of a single event.
	MaxTotalSeats = 1000
)

// Seat is one entry of an event's seat map. Seats are owned by their event
// and stored inline on the events row; they are mutated only through
// Event.Book and Event.Release.
//
// Invariant: BookedBy and BookingDate are non-nil exactly when IsBooked is true.
type Seat struct {
	Label       string     `json:"label"`
	IsBooked    bool       `json:"is_booked"`
	BookedBy    *uuid.UUID `json:"booked_by,omitempty"`
	BookingDate *time.Time `json:"booking_date,omitempty"`
}

type Event struct {
	Base
	Title          string        `db:"title"`
	Description    string        `db:"description"`
	StartsAt       time.Time     `db:"starts_at"`
	Location       string        `db:"location"`
	Category       EventCategory `db:"category"`
	Price          float64       `db:"price"`
	TotalSeats     int           `db:"total_seats"`
	AvailableSeats int           `db:"available_seats"`
	Seats          []Seat        `db:"seats"`
	IsActive       bool          `db:"is_active"`

	// Version guards concurrent writers: every persisted update must carry
	// the version it was loaded with, and the repository rejects the write
	// if the row has moved on.
	Version int `db:"version"`
}

// GenerateSeatMap builds the ordered seat sequence for totalSeats seats,
// SeatRowWidth per row, labeled "A-1".."A-10", "B-1", ... The last row may be
// partial. Rows beyond Z continue as AA, AB, and so on.
func GenerateSeatMap(totalSeats int) []Seat {
	seats := make([]Seat, 0, totalSeats)
	rows := int(math.Ceil(float64(totalSeats) / float64(SeatRowWidth)))

	for row := 0; row < rows; row++ {
		for col := 1; col <= SeatRowWidth; col++ {
			if row*SeatRowWidth+col > totalSeats {
				break
			}
			seats = append(seats, Seat{
				Label: fmt.Sprintf("%s-%d", rowLetters(row), col),
			})
		}
	}

	return seats
}

// RegenerateSeats replaces the whole seat map and resets the availability
// counter. Destructive: existing bookings on the map are discarded, so callers
// must guard against live tickets first.
func (e *Event) RegenerateSeats(totalSeats int) {
	e.TotalSeats = totalSeats
	e.AvailableSeats = totalSeats
	e.Seats = GenerateSeatMap(totalSeats)
}

// SeatByLabel returns a pointer into the seat map, or nil.
func (e *Event) SeatByLabel(label string) *Seat {
	for i := range e.Seats {
		if e.Seats[i].Label == label {
			return &e.Seats[i]
		}
	}
	return nil
}

// Book claims the labeled seat for userID. First writer wins: there is no
// ownership check on an unbooked seat. The available-seat counter moves
// together with the seat flags; the change stays in memory until the
// enclosing transaction commits.
func (e *Event) Book(label string, userID uuid.UUID, now time.Time) error {
	seat := e.SeatByLabel(label)
	if seat == nil {
		return ErrSeatNotFound
	}
	if seat.IsBooked {
		return ErrSeatAlreadyBooked
	}

	seat.IsBooked = true
	seat.BookedBy = &userID
	seat.BookingDate = &now
	e.AvailableSeats--

	return nil
}

// Release frees the labeled seat.
func (e *Event) Release(label string) error {
	seat := e.SeatByLabel(label)
	if seat == nil {
		return ErrSeatNotFound
	}
	if !seat.IsBooked {
		return ErrSeatNotBooked
	}

	seat.IsBooked = false
	seat.BookedBy = nil
	seat.BookingDate = nil
	e.AvailableSeats++

	return nil
}

// BookedSeatCount recomputes the booked total from the seat map. Used by
// tests to assert that AvailableSeats never drifts from the seats themselves.
func (e *Event) BookedSeatCount() int {
	count := 0
	for i := range e.Seats {
		if e.Seats[i].IsBooked {
			count++
		}
	}
	return count
}

func rowLetters(row int) string {
	letters := ""
	for row >= 0 {
		letters = string(rune('A'+row%26)) + letters
		row = row/26 - 1
	}
	return letters
}
