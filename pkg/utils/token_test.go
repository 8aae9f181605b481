package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationPayload_Deterministic(t *testing.T) {
	ticketID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()
	bookedAt := time.Now()

	first := GenerateVerificationPayload("secret", ticketID, eventID, "A-1", userID, bookedAt)
	second := GenerateVerificationPayload("secret", ticketID, eventID, "A-1", userID, bookedAt)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerateVerificationPayload_InputSensitivity(t *testing.T) {
	ticketID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()
	bookedAt := time.Now()

	base := GenerateVerificationPayload("secret", ticketID, eventID, "A-1", userID, bookedAt)

	assert.NotEqual(t, base,
		GenerateVerificationPayload("other-secret", ticketID, eventID, "A-1", userID, bookedAt))
	assert.NotEqual(t, base,
		GenerateVerificationPayload("secret", uuid.New(), eventID, "A-1", userID, bookedAt))
	assert.NotEqual(t, base,
		GenerateVerificationPayload("secret", ticketID, eventID, "A-2", userID, bookedAt))
	assert.NotEqual(t, base,
		GenerateVerificationPayload("secret", ticketID, eventID, "A-1", userID, bookedAt.Add(time.Second)))
}

func TestGenerateVerificationPayload_URLSafe(t *testing.T) {
	payload := GenerateVerificationPayload("secret", uuid.New(), uuid.New(), "AA-10", uuid.New(), time.Now())

	assert.NotContains(t, payload, "+")
	assert.NotContains(t, payload, "/")
	assert.NotContains(t, payload, "=")
}
