package response

import (
	"event-ticketing/internal/data/repository"
)

type EventReportResponse struct {
	EventID        string  `json:"event_id"`
	Title          string  `json:"title"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	BookedCount    int64   `json:"booked_count"`
	CheckedInCount int64   `json:"checked_in_count"`
	CancelledCount int64   `json:"cancelled_count"`
	Revenue        float64 `json:"revenue"`
}

func EventStatsToResponse(title string, totalSeats, availableSeats int, stats *repository.EventTicketStats) EventReportResponse {
	return EventReportResponse{
		EventID:        stats.EventID.String(),
		Title:          title,
		TotalSeats:     totalSeats,
		AvailableSeats: availableSeats,
		BookedCount:    stats.BookedCount,
		CheckedInCount: stats.CheckedInCount,
		CancelledCount: stats.CancelledCount,
		Revenue:        stats.Revenue,
	}
}
