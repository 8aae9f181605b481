package usecase

import (
	"context"
	"testing"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEventFixture(store *memStore) EventService {
	repo := &repository.Repository{
		Event:  &memEventRepo{s: store},
		Ticket: &memTicketRepo{s: store},
	}
	return NewEventService(repo, zap.NewNop())
}

func validEventRequest() *request.EventRequest {
	return &request.EventRequest{
		Title:      "Jazz Night",
		StartsAt:   time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		Location:   "Bandung",
		Category:   "concert",
		Price:      75,
		TotalSeats: 25,
	}
}

func TestCreateEvent_Success(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	resp, err := svc.CreateEvent(context.Background(), validEventRequest())
	require.NoError(t, err)

	assert.Equal(t, "Jazz Night", resp.Title)
	assert.Equal(t, 25, resp.TotalSeats)
	assert.Equal(t, 25, resp.AvailableSeats)
	assert.True(t, resp.IsActive)

	stored := store.getEvent(uuid.MustParse(resp.ID))
	require.NotNil(t, stored)
	assert.Len(t, stored.Seats, 25)
	assert.Equal(t, "A-1", stored.Seats[0].Label)
	assert.Equal(t, "C-5", stored.Seats[24].Label)
	assert.Equal(t, 1, stored.Version)
}

func TestCreateEvent_PastStart(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	req := validEventRequest()
	req.StartsAt = time.Now().Add(-time.Hour).Format(time.RFC3339)

	_, err := svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateEvent_InvalidCategory(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	req := validEventRequest()
	req.Category = "opera"

	_, err := svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateEvent_TooManySeats(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	req := validEventRequest()
	req.TotalSeats = entity.MaxTotalSeats + 1

	_, err := svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateEvent_Fields(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)
	event := newStoredEvent(store, 20)

	title := "Renamed"
	price := 99.5
	resp, err := svc.UpdateEvent(context.Background(), event.ID.String(),
		&request.EventUpdateRequest{Title: &title, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, 99.5, resp.Price)
	assert.Equal(t, 20, resp.TotalSeats)
}

func TestUpdateEvent_LostVersionRace(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)
	event := newStoredEvent(store, 20)

	// A competing write bumps the version between the load and the guarded
	// update. The conflict must reach the caller as ErrVersionConflict.
	store.beforeEventUpdate = func() {
		stored := store.getEvent(event.ID)
		stored.Version++
		store.putEvent(stored)
	}

	title := "Renamed"
	_, err := svc.UpdateEvent(context.Background(), event.ID.String(),
		&request.EventUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}

func TestUpdateEvent_ResizeBlockedByBookings(t *testing.T) {
	store := newMemStore()
	eventSvc := newEventFixture(store)
	bookingSvc := newBookingFixture(store)
	event := newStoredEvent(store, 20)

	_, err := bookingSvc.PlaceBooking(context.Background(), uuid.NewString(), event.ID.String(),
		&request.CreateBookingRequest{SeatLabel: "A-1"})
	require.NoError(t, err)

	seats := 30
	_, err = eventSvc.UpdateEvent(context.Background(), event.ID.String(),
		&request.EventUpdateRequest{TotalSeats: &seats})
	assert.ErrorIs(t, err, entity.ErrEventHasBookings)
}

func TestUpdateEvent_ForcedResize(t *testing.T) {
	store := newMemStore()
	eventSvc := newEventFixture(store)
	bookingSvc := newBookingFixture(store)
	event := newStoredEvent(store, 20)

	_, err := bookingSvc.PlaceBooking(context.Background(), uuid.NewString(), event.ID.String(),
		&request.CreateBookingRequest{SeatLabel: "A-1"})
	require.NoError(t, err)

	seats := 30
	resp, err := eventSvc.UpdateEvent(context.Background(), event.ID.String(),
		&request.EventUpdateRequest{TotalSeats: &seats, Force: true})
	require.NoError(t, err)

	// Forced resize rebuilds the map from scratch, existing bookings on the
	// old map are gone.
	assert.Equal(t, 30, resp.TotalSeats)
	assert.Equal(t, 30, resp.AvailableSeats)

	stored := store.getEvent(event.ID)
	assert.False(t, stored.SeatByLabel("A-1").IsBooked)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	title := "x"
	_, err := svc.UpdateEvent(context.Background(), uuid.NewString(),
		&request.EventUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestDeleteEvent_Deactivates(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)
	event := newStoredEvent(store, 10)

	err := svc.DeleteEvent(context.Background(), event.ID.String())
	require.NoError(t, err)

	stored := store.getEvent(event.ID)
	assert.False(t, stored.IsActive)
}

func TestGetEventByID_WithSeats(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)
	event := newStoredEvent(store, 15)

	resp, err := svc.GetEventByID(context.Background(), event.ID.String())
	require.NoError(t, err)

	assert.Len(t, resp.Seats, 15)
	assert.Equal(t, "B-5", resp.Seats[14].Label)
}

func TestGetEventSeats_UnknownEvent(t *testing.T) {
	store := newMemStore()
	svc := newEventFixture(store)

	_, err := svc.GetEventSeats(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}
