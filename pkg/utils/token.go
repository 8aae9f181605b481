package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateVerificationPayload derives the opaque check-in token stored on a
// ticket. It binds the ticket to its booking facts; the booking core never
// interprets the result, it only compares it on check-in. Deterministic for a
// given input, so the same booking always yields the same payload.
func GenerateVerificationPayload(secret string, ticketID, eventID uuid.UUID, seatLabel string, userID uuid.UUID, bookedAt time.Time) string {
	msg := fmt.Sprintf("%s|%s|%s|%s|%d",
		ticketID.String(), eventID.String(), seatLabel, userID.String(), bookedAt.Unix())

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
