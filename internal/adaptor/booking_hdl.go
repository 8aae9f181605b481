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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// PlaceBooking handles POST /api/events/{id}/bookings
func (h *BookingHandler) PlaceBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, err := h.service.PlaceBooking(r.Context(), userID.String(), eventID, &req)
	if err != nil {
		writeServiceError(w, h.log, "place booking", err)
		return
	}

	utils.ResponseCreated(w, "Booking placed successfully", ticket)
}

// CancelBooking handles PUT /api/tickets/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID := chi.URLParam(r, "id")

	ticket, err := h.service.CancelBooking(r.Context(), userID.String(), h.isAdmin(r), ticketID)
	if err != nil {
		writeServiceError(w, h.log, "cancel booking", err)
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", ticket)
}

// VerifyTicket handles POST /api/admin/tickets/{id}/verify (admin only)
func (h *BookingHandler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")

	var req request.VerifyTicketRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.service.VerifyTicket(r.Context(), ticketID, &req)
	if err != nil {
		writeServiceError(w, h.log, "verify ticket", err)
		return
	}

	utils.ResponseSuccess(w, "Ticket checked in successfully", resp)
}

// GetMyTickets handles GET /api/user/tickets
func (h *BookingHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.GetUserTickets(r.Context(), userID.String(), req)
	if err != nil {
		writeServiceError(w, h.log, "get tickets", err)
		return
	}

	utils.ResponseSuccess(w, "Tickets retrieved successfully", tickets)
}

// GetTicket handles GET /api/tickets/{id}
func (h *BookingHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID := chi.URLParam(r, "id")

	ticket, err := h.service.GetTicketByID(r.Context(), userID.String(), h.isAdmin(r), ticketID)
	if err != nil {
		writeServiceError(w, h.log, "get ticket", err)
		return
	}

	utils.ResponseSuccess(w, "Ticket retrieved successfully", ticket)
}

func (h *BookingHandler) isAdmin(r *http.Request) bool {
	role, ok := utils.GetRoleFromContext(r.Context())
	return ok && role == "admin"
}
