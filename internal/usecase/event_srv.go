package usecase

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
	GetEvents(ctx context.Context, req *request.PaginatedRequest, category string, includeInactive bool) (*response.PaginatedResponse[response.EventResponse], error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventDetailResponse, error)
	GetEventSeats(ctx context.Context, eventID string) ([]response.SeatResponse, error)
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("%w: starts_at must be RFC3339", entity.ErrValidation)
	}
	if !startsAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: starts_at must be in the future", entity.ErrValidation)
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:          req.Title,
		Description:    req.Description,
		StartsAt:       startsAt,
		Location:       req.Location,
		Category:       entity.EventCategory(req.Category),
		Price:          req.Price,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Seats:          entity.GenerateSeatMap(req.TotalSeats),
		IsActive:       true,
		Version:        1,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title),
		zap.Int("total_seats", event.TotalSeats))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		startsAt, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			return nil, fmt.Errorf("%w: starts_at must be RFC3339", entity.ErrValidation)
		}
		event.StartsAt = startsAt
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		event.Category = entity.EventCategory(*req.Category)
	}
	if req.Price != nil {
		event.Price = *req.Price
	}

	// Resizing regenerates the seat map and wipes every booking on it, so it
	// is refused while live tickets exist unless the caller forces it.
	if req.TotalSeats != nil && *req.TotalSeats != event.TotalSeats {
		activeCount, err := s.repo.Ticket.CountActiveByEvent(ctx, event.ID)
		if err != nil {
			s.log.Error("Failed to count active tickets", zap.Error(err), zap.String("event_id", eventID))
			return nil, fmt.Errorf("failed to check bookings: %w", err)
		}
		if activeCount > 0 && !req.Force {
			return nil, entity.ErrEventHasBookings
		}
		event.RegenerateSeats(*req.TotalSeats)
	}

	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}

	// Deactivation hides the event from listings and blocks new bookings.
	// Already issued tickets stay valid.
	if err := s.repo.Event.SetActive(ctx, event.ID, false); err != nil {
		s.log.Error("Failed to deactivate event", zap.Error(err), zap.String("event_id", eventID))
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.log.Info("Event deactivated", zap.String("event_id", eventID))
	return nil
}

func (s *eventService) GetEvents(ctx context.Context, req *request.PaginatedRequest, category string, includeInactive bool) (*response.PaginatedResponse[response.EventResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}

	var categoryFilter *string
	if category != "" {
		categoryFilter = &category
	}

	events, err := s.repo.Event.FindAll(ctx, req.Limit(), req.Offset(), categoryFilter, !includeInactive)
	if err != nil {
		s.log.Error("Failed to get events", zap.Error(err))
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	total, err := s.repo.Event.CountAll(ctx, categoryFilter, !includeInactive)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	data := make([]response.EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, response.EventToResponse(event))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventDetailResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := response.EventToDetailResponse(event)
	return &resp, nil
}

func (s *eventService) GetEventSeats(ctx context.Context, eventID string) ([]response.SeatResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seats := make([]response.SeatResponse, 0, len(event.Seats))
	for _, seat := range event.Seats {
		seats = append(seats, response.SeatResponse{
			Label:    seat.Label,
			IsBooked: seat.IsBooked,
		})
	}

	return seats, nil
}

func (s *eventService) findEvent(ctx context.Context, eventID string) (*entity.Event, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID", entity.ErrValidation)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	if event == nil {
		return nil, entity.ErrEventNotFound
	}

	return event, nil
}
