package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type TicketResponse struct {
	ID            string              `json:"id"`
	EventID       string              `json:"event_id"`
	UserID        string              `json:"user_id"`
	EventTitle    string              `json:"event_title,omitempty"`
	EventStartsAt *time.Time          `json:"event_starts_at,omitempty"`
	Location      string              `json:"location,omitempty"`
	SeatLabel     string              `json:"seat_label"`
	Price         float64             `json:"price"`
	Status        entity.TicketStatus `json:"status"`
	BookingDate   time.Time           `json:"booking_date"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
	CheckedInAt   *time.Time          `json:"checked_in_at,omitempty"`
	Payload       string              `json:"payload,omitempty"`
}

type VerifyTicketResponse struct {
	TicketID    string              `json:"ticket_id"`
	SeatLabel   string              `json:"seat_label"`
	Status      entity.TicketStatus `json:"status"`
	CheckedInAt *time.Time          `json:"checked_in_at,omitempty"`
}

// Helper converters
func TicketToResponse(ticket *entity.Ticket, event *entity.Event) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID.String(),
		EventID:     ticket.EventID.String(),
		UserID:      ticket.UserID.String(),
		SeatLabel:   ticket.SeatLabel,
		Price:       ticket.Price,
		Status:      ticket.Status,
		BookingDate: ticket.BookingDate,
		CancelledAt: ticket.CancelledAt,
		CheckedInAt: ticket.CheckedInAt,
		Payload:     ticket.VerificationPayload,
	}

	if event != nil {
		resp.EventTitle = event.Title
		resp.EventStartsAt = &event.StartsAt
		resp.Location = event.Location
	}

	return resp
}

func TicketToVerifyResponse(ticket *entity.Ticket) VerifyTicketResponse {
	return VerifyTicketResponse{
		TicketID:    ticket.ID.String(),
		SeatLabel:   ticket.SeatLabel,
		Status:      ticket.Status,
		CheckedInAt: ticket.CheckedInAt,
	}
}
