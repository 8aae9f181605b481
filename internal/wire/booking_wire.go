package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// Booking and ticket routes, all require a session
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/events/{id}/bookings", bookingHandler.PlaceBooking)
		r.Get("/api/user/tickets", bookingHandler.GetMyTickets)
		r.Get("/api/tickets/{id}", bookingHandler.GetTicket)
		r.Put("/api/tickets/{id}/cancel", bookingHandler.CancelBooking)
	})

	// Admin check-in
	r.Route("/api/admin/tickets", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.Admin(log))

		r.Post("/{id}/verify", bookingHandler.VerifyTicket)
	})
}
