package get_specialist_bookings

import (
	"context"

	"github.com/velara/FMC-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	GetSpecialistBookings(ctx context.Context, req *models.GetSpecialistBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
