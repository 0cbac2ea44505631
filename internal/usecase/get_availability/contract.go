package get_availability

import (
	"context"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	availabilityCache "github.com/velara/FMC-SchedulingService/internal/infra/cache/availability"
	"github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	// ListBySpecialistAndDate получает все смены специалиста на конкретную дату
	ListBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error)
}

// FacilityRepository интерфейс репозитория расписания заведения
type FacilityRepository interface {
	GetHoursByWeekday(ctx context.Context, weekday time.Weekday) (*domain.FacilityHours, error)
	GetSlotConfig(ctx context.Context) (*domain.SlotConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBySpecialistWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// AvailabilityCache интерфейс кэша рассчитанной доступности
type AvailabilityCache interface {
	Get(key availabilityCache.Key) (availabilityCache.Entry, bool)
	Set(key availabilityCache.Key, entry availabilityCache.Entry)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
