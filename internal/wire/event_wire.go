package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes, anyone can browse events and seat maps
	r.Get("/api/events", eventHandler.GetEvents)
	r.Get("/api/events/{id}", eventHandler.GetEvent)
	r.Get("/api/events/{id}/seats", eventHandler.GetEventSeats)

	// Admin event management and reporting
	r.Route("/api/admin/events", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", eventHandler.GetAllEvents)
		r.Post("/", eventHandler.CreateEvent)
		r.Put("/{id}", eventHandler.UpdateEvent)
		r.Delete("/{id}", eventHandler.DeleteEvent)

		r.Get("/{id}/report", reportHandler.EventReport)
		r.Get("/{id}/tickets/export", reportHandler.ExportEventTickets)
	})
}
