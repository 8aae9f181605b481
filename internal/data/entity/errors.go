package entity

import "errors"

// Domain errors. Services wrap these with context; handlers map them to HTTP
// status codes with errors.Is.
var (
	// Not found
	ErrEventNotFound  = errors.New("event not found")
	ErrSeatNotFound   = errors.New("seat not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("user not found")

	// Conflict
	ErrSeatAlreadyBooked      = errors.New("seat is already booked")
	ErrSeatNotBooked          = errors.New("seat is not booked")
	ErrDuplicateBooking       = errors.New("an active ticket already exists for this seat")
	ErrTicketAlreadyCancelled = errors.New("ticket is already cancelled")
	ErrEventHasBookings       = errors.New("event has active bookings")

	// Invalid state
	ErrEventFinished        = errors.New("event has already occurred")
	ErrTicketNotCancellable = errors.New("ticket status does not allow cancellation")
	ErrTicketNotCheckable   = errors.New("ticket status does not allow check-in")
	ErrVerificationMismatch = errors.New("verification payload does not match")

	// Validation
	ErrValidation = errors.New("validation failed")

	// Authorization
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrForbidden          = errors.New("operation is forbidden for user")

	// Registration conflicts
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	// Transient: the atomic commit lost a version race after all retries.
	// The only error callers may retry with the same arguments.
	ErrBookingConflict = errors.New("booking aborted due to concurrent update, please retry")
)
