package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/queue"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// retryBackoff spaces out retries after a version conflict so that two racing
// bookers do not keep colliding on the same row.
const retryBackoff = 15 * time.Millisecond

type BookingService interface {
	// PlaceBooking claims a seat and issues its ticket atomically. It either
	// returns a ticket whose seat is marked booked on the event, or an error
	// with no partial state left behind. Only entity.ErrBookingConflict is
	// safe to retry with the same arguments.
	PlaceBooking(ctx context.Context, userID, eventID string, req *request.CreateBookingRequest) (*response.TicketResponse, error)

	// CancelBooking releases the ticket's seat and moves the ticket to its
	// cancelled state in one transaction. Admins may cancel any ticket,
	// owners only their own.
	CancelBooking(ctx context.Context, userID string, isAdmin bool, ticketID string) (*response.TicketResponse, error)

	// VerifyTicket checks a scanned payload against the ticket and checks
	// the holder in.
	VerifyTicket(ctx context.Context, ticketID string, req *request.VerifyTicketRequest) (*response.VerifyTicketResponse, error)

	GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetTicketByID(ctx context.Context, userID string, isAdmin bool, ticketID string) (*response.TicketResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	pub    *queue.Publisher
	log    *zap.Logger
}

// NewBookingService wires the booking coordinator. pub may be nil, which
// disables ticket lifecycle publishing.
func NewBookingService(repo *repository.Repository, config *utils.Config, pub *queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		pub:    pub,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) PlaceBooking(ctx context.Context, userID, eventID string, req *request.CreateBookingRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", entity.ErrValidation)
	}
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID", entity.ErrValidation)
	}

	// Abort-and-retry loop. Each attempt re-reads the event so the seat map
	// reflects whatever the conflicting writer committed; non-retryable
	// failures surface immediately.
	for attempt := 0; attempt <= s.config.Booking.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		event, err := s.repo.Event.FindByID(ctx, eid)
		if err != nil {
			s.log.Error("Failed to load event", zap.Error(err), zap.String("event_id", eventID))
			return nil, fmt.Errorf("failed to load event: %w", err)
		}
		if event == nil || !event.IsActive {
			return nil, entity.ErrEventNotFound
		}

		now := time.Now()
		if !event.StartsAt.After(now) {
			return nil, entity.ErrEventFinished
		}

		if err := event.Book(req.SeatLabel, uid, now); err != nil {
			return nil, err
		}

		// The seat can be free while a live ticket for the same triple still
		// exists (seat map regenerated after a forced resize). The ledger,
		// not the map, is the double-submit authority.
		exists, err := s.repo.Ticket.ActiveExists(ctx, eid, uid, req.SeatLabel)
		if err != nil {
			s.log.Error("Failed to check existing ticket", zap.Error(err),
				zap.String("event_id", eventID), zap.String("seat", req.SeatLabel))
			return nil, fmt.Errorf("failed to check existing ticket: %w", err)
		}
		if exists {
			return nil, entity.ErrDuplicateBooking
		}

		ticket := &entity.Ticket{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			EventID:     event.ID,
			UserID:      uid,
			SeatLabel:   req.SeatLabel,
			Price:       event.Price,
			Status:      entity.TicketStatusBooked,
			BookingDate: now,
		}
		ticket.VerificationPayload = utils.GenerateVerificationPayload(
			s.config.Booking.TicketSecret,
			ticket.ID, event.ID, ticket.SeatLabel, uid, ticket.BookingDate,
		)

		err = s.repo.BookingTx.CommitBooking(ctx, event, ticket)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Info("Booking lost version race, retrying",
				zap.String("event_id", eventID),
				zap.String("seat", req.SeatLabel),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			s.log.Error("Failed to commit booking", zap.Error(err),
				zap.String("event_id", eventID), zap.String("seat", req.SeatLabel))
			return nil, fmt.Errorf("failed to commit booking: %w", err)
		}

		s.log.Info("Booking placed",
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("event_id", eventID),
			zap.String("user_id", userID),
			zap.String("seat", req.SeatLabel))

		s.publishTicketEvent(queue.RouteTicketBooked, ticket)

		resp := response.TicketToResponse(ticket, event)
		return &resp, nil
	}

	s.log.Warn("Booking gave up after repeated version conflicts",
		zap.String("event_id", eventID),
		zap.String("seat", req.SeatLabel),
		zap.Int("retries", s.config.Booking.MaxRetries))
	return nil, entity.ErrBookingConflict
}

func (s *bookingService) CancelBooking(ctx context.Context, userID string, isAdmin bool, ticketID string) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && ticket.UserID.String() != userID {
		return nil, entity.ErrForbidden
	}

	if err := ticket.Cancel(time.Now()); err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= s.config.Booking.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		event, err := s.repo.Event.FindByID(ctx, ticket.EventID)
		if err != nil {
			s.log.Error("Failed to load event for cancellation", zap.Error(err),
				zap.String("ticket_id", ticketID))
			return nil, fmt.Errorf("failed to load event: %w", err)
		}

		// A deleted event or an already-free seat (after a forced seat map
		// regeneration) must not block the cancellation itself.
		if event != nil {
			if err := event.Release(ticket.SeatLabel); err != nil {
				s.log.Warn("Seat could not be released, cancelling ticket only",
					zap.Error(err),
					zap.String("ticket_id", ticketID),
					zap.String("seat", ticket.SeatLabel))
				event = nil
			}
		}

		err = s.repo.BookingTx.CommitCancellation(ctx, event, ticket)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Info("Cancellation lost version race, retrying",
				zap.String("ticket_id", ticketID),
				zap.Int("attempt", attempt+1))
			continue
		}
		if errors.Is(err, repository.ErrTicketStatusConflict) {
			// A concurrent writer moved the ticket out of booked between our
			// load and the commit. Surface the state the winner left behind.
			return nil, s.staleTicketError(ctx, ticketID, entity.ErrTicketNotCancellable)
		}
		if err != nil {
			s.log.Error("Failed to commit cancellation", zap.Error(err),
				zap.String("ticket_id", ticketID))
			return nil, fmt.Errorf("failed to commit cancellation: %w", err)
		}

		s.log.Info("Booking cancelled",
			zap.String("ticket_id", ticketID),
			zap.String("seat", ticket.SeatLabel))

		s.publishTicketEvent(queue.RouteTicketCancelled, ticket)

		resp := response.TicketToResponse(ticket, event)
		return &resp, nil
	}

	s.log.Warn("Cancellation gave up after repeated version conflicts",
		zap.String("ticket_id", ticketID),
		zap.Int("retries", s.config.Booking.MaxRetries))
	return nil, entity.ErrBookingConflict
}

func (s *bookingService) VerifyTicket(ctx context.Context, ticketID string, req *request.VerifyTicketRequest) (*response.VerifyTicketResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Payload != "" && req.Payload != ticket.VerificationPayload {
		s.log.Warn("Verification payload mismatch", zap.String("ticket_id", ticketID))
		return nil, entity.ErrVerificationMismatch
	}

	if err := ticket.CheckIn(time.Now()); err != nil {
		return nil, err
	}

	err = s.repo.Ticket.Update(ctx, ticket, entity.TicketStatusBooked)
	if errors.Is(err, repository.ErrTicketStatusConflict) {
		// The ticket left the booked state between our load and the write,
		// most likely a concurrent cancellation. The check-in must not win.
		return nil, s.staleTicketError(ctx, ticketID, entity.ErrTicketNotCheckable)
	}
	if err != nil {
		s.log.Error("Failed to persist check-in", zap.Error(err), zap.String("ticket_id", ticketID))
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}

	s.log.Info("Ticket checked in", zap.String("ticket_id", ticketID))

	s.publishTicketEvent(queue.RouteTicketCheckedIn, ticket)

	resp := response.TicketToVerifyResponse(ticket)
	return &resp, nil
}

func (s *bookingService) GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", entity.ErrValidation)
	}

	if req.Page < 1 {
		req.Page = 1
	}

	tickets, err := s.repo.Ticket.FindByUserID(ctx, uid, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user tickets", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, uid)
	if err != nil {
		s.log.Error("Failed to count user tickets", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	data := make([]response.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		data = append(data, response.TicketToResponse(ticket, nil))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetTicketByID(ctx context.Context, userID string, isAdmin bool, ticketID string) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && ticket.UserID.String() != userID {
		return nil, entity.ErrForbidden
	}

	event, err := s.repo.Event.FindByID(ctx, ticket.EventID)
	if err != nil {
		s.log.Error("Failed to load event for ticket", zap.Error(err), zap.String("ticket_id", ticketID))
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	resp := response.TicketToResponse(ticket, event)
	return &resp, nil
}

func (s *bookingService) findTicket(ctx context.Context, ticketID string) (*entity.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ticket ID", entity.ErrValidation)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find ticket", zap.Error(err), zap.String("ticket_id", ticketID))
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	if ticket == nil {
		return nil, entity.ErrTicketNotFound
	}

	return ticket, nil
}

// staleTicketError re-reads a ticket whose guarded write lost a race and
// maps the winning state to the matching transition error. fallback covers
// the cases where the re-read cannot tell more.
func (s *bookingService) staleTicketError(ctx context.Context, ticketID string, fallback error) error {
	current, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return err
	}

	if errors.Is(fallback, entity.ErrTicketNotCancellable) && current.Status == entity.TicketStatusCancelled {
		return entity.ErrTicketAlreadyCancelled
	}
	return fallback
}

type ticketEventMessage struct {
	TicketID   string    `json:"ticket_id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	SeatLabel  string    `json:"seat_label"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *bookingService) publishTicketEvent(routingKey string, ticket *entity.Ticket) {
	if s.pub == nil {
		return
	}

	msg := ticketEventMessage{
		TicketID:   ticket.ID.String(),
		EventID:    ticket.EventID.String(),
		UserID:     ticket.UserID.String(),
		SeatLabel:  ticket.SeatLabel,
		Status:     string(ticket.Status),
		OccurredAt: time.Now(),
	}

	if err := s.pub.Publish(routingKey, msg); err != nil {
		// Publishing is best effort, the booking itself already committed.
		s.log.Warn("Failed to publish ticket event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.String("ticket_id", ticket.ID.String()))
	}
}
