package request

type CreateBookingRequest struct {
	SeatLabel string `json:"seat_label" validate:"required,min=3,max=8"`
}

type VerifyTicketRequest struct {
	// Payload is the scanned verification token; empty skips the
	// payload comparison (manual check-in by an admin).
	Payload string `json:"payload,omitempty"`
}
