package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is the common identity/audit embed. Events and users are soft-deleted
// via their own active flags, so there is no deleted_at here.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
