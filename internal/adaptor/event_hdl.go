package adaptor

import (
	"encoding/json"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// CreateEvent handles POST /api/admin/events (admin only)
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, "create event", err)
		return
	}

	utils.ResponseCreated(w, "Event created successfully", resp)
}

// UpdateEvent handles PUT /api/admin/events/{id} (admin only)
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req request.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateEvent(r.Context(), eventID, &req)
	if err != nil {
		writeServiceError(w, h.log, "update event", err)
		return
	}

	utils.ResponseSuccess(w, "Event updated successfully", resp)
}

// DeleteEvent handles DELETE /api/admin/events/{id} (admin only)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	if err := h.service.DeleteEvent(r.Context(), eventID); err != nil {
		writeServiceError(w, h.log, "delete event", err)
		return
	}

	utils.ResponseSuccess(w, "Event deleted successfully", nil)
}

// GetEvents handles GET /api/events
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	events, err := h.service.GetEvents(r.Context(), req, query.Get("category"), false)
	if err != nil {
		writeServiceError(w, h.log, "get events", err)
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// GetAllEvents handles GET /api/admin/events (admin only). Unlike the public
// listing it includes inactive and past events.
func (h *EventHandler) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	events, err := h.service.GetEvents(r.Context(), req, query.Get("category"), true)
	if err != nil {
		writeServiceError(w, h.log, "get all events", err)
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := h.service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, h.log, "get event", err)
		return
	}

	utils.ResponseSuccess(w, "Event retrieved successfully", event)
}

// GetEventSeats handles GET /api/events/{id}/seats
func (h *EventHandler) GetEventSeats(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	seats, err := h.service.GetEventSeats(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, h.log, "get event seats", err)
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved successfully", seats)
}
