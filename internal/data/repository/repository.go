package repository

import (
	"event-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Event     EventRepository
	Ticket    TicketRepository
	BookingTx BookingTxRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Event:     NewEventRepository(db, log),
		Ticket:    NewTicketRepository(db, log),
		BookingTx: NewBookingTxRepository(db, log),
	}
}
