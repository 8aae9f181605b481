package usecase

import (
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/queue"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Event   EventService
	Booking BookingService
	Report  ReportService
}

func NewService(repo *repository.Repository, config *utils.Config, pub *queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Event:   NewEventService(repo, log),
		Booking: NewBookingService(repo, config, pub, log),
		Report:  NewReportService(repo, log),
	}
}
