package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	// EventReport aggregates the ticket ledger of one event.
	EventReport(ctx context.Context, eventID string) (*response.EventReportResponse, error)

	// ExportEventTickets streams the event's full ticket ledger as CSV.
	ExportEventTickets(ctx context.Context, eventID string, w io.Writer) error
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) EventReport(ctx context.Context, eventID string) (*response.EventReportResponse, error) {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Ticket.EventStats(ctx, event.ID)
	if err != nil {
		s.log.Error("Failed to aggregate event stats", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	resp := response.EventStatsToResponse(event.Title, event.TotalSeats, event.AvailableSeats, stats)
	return &resp, nil
}

func (s *reportService) ExportEventTickets(ctx context.Context, eventID string, w io.Writer) error {
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}

	tickets, err := s.repo.Ticket.FindByEventID(ctx, event.ID)
	if err != nil {
		s.log.Error("Failed to load tickets for export", zap.Error(err), zap.String("event_id", eventID))
		return fmt.Errorf("failed to load tickets: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"ticket_id", "user_id", "seat_label", "price", "status", "booking_date", "cancelled_at", "checked_in_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, ticket := range tickets {
		record := []string{
			ticket.ID.String(),
			ticket.UserID.String(),
			ticket.SeatLabel,
			strconv.FormatFloat(ticket.Price, 'f', 2, 64),
			string(ticket.Status),
			ticket.BookingDate.Format(time.RFC3339),
			formatNullableTime(ticket.CancelledAt),
			formatNullableTime(ticket.CheckedInAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.log.Info("Ticket ledger exported",
		zap.String("event_id", eventID),
		zap.Int("tickets", len(tickets)))
	return nil
}

func (s *reportService) loadEvent(ctx context.Context, eventID string) (*entity.Event, error) {
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

func formatNullableTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
