package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a DB-backed bearer token. The auth middleware resolves it to a
// (userID, role) pair that the booking core trusts unconditionally.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
