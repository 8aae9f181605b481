package adaptor

import (
	"errors"
	"net/http"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps domain errors to HTTP status codes. Services wrap
// the entity sentinels, so matching goes through errors.Is.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrSeatNotFound),
		errors.Is(err, entity.ErrTicketNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrSeatAlreadyBooked),
		errors.Is(err, entity.ErrSeatNotBooked),
		errors.Is(err, entity.ErrDuplicateBooking),
		errors.Is(err, entity.ErrTicketAlreadyCancelled),
		errors.Is(err, entity.ErrEventHasBookings),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrUsernameTaken),
		errors.Is(err, entity.ErrBookingConflict),
		errors.Is(err, repository.ErrVersionConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrEventFinished),
		errors.Is(err, entity.ErrTicketNotCancellable),
		errors.Is(err, entity.ErrTicketNotCheckable),
		errors.Is(err, entity.ErrVerificationMismatch):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, entity.ErrAccountDisabled),
		errors.Is(err, entity.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
