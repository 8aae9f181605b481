package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type EventResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	StartsAt       time.Time            `json:"starts_at"`
	Location       string               `json:"location"`
	Category       entity.EventCategory `json:"category"`
	Price          float64              `json:"price"`
	TotalSeats     int                  `json:"total_seats"`
	AvailableSeats int                  `json:"available_seats"`
	IsActive       bool                 `json:"is_active"`
	CreatedAt      time.Time            `json:"created_at"`
}

type EventDetailResponse struct {
	EventResponse
	Seats     []SeatResponse `json:"seats"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type SeatResponse struct {
	Label    string `json:"label"`
	IsBooked bool   `json:"is_booked"`
}

// Helper converters
func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:             event.ID.String(),
		Title:          event.Title,
		Description:    event.Description,
		StartsAt:       event.StartsAt,
		Location:       event.Location,
		Category:       event.Category,
		Price:          event.Price,
		TotalSeats:     event.TotalSeats,
		AvailableSeats: event.AvailableSeats,
		IsActive:       event.IsActive,
		CreatedAt:      event.CreatedAt,
	}
}

func EventToDetailResponse(event *entity.Event) EventDetailResponse {
	seats := make([]SeatResponse, 0, len(event.Seats))
	for _, seat := range event.Seats {
		seats = append(seats, SeatResponse{
			Label:    seat.Label,
			IsBooked: seat.IsBooked,
		})
	}

	return EventDetailResponse{
		EventResponse: EventToResponse(event),
		Seats:         seats,
		UpdatedAt:     &event.UpdatedAt,
	}
}
