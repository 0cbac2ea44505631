package commit_booking

import (
	"context"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	"github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error)
}

// FacilityRepository интерфейс репозитория расписания заведения
type FacilityRepository interface {
	GetHoursByWeekday(ctx context.Context, weekday time.Weekday) (*domain.FacilityHours, error)
	GetSlotConfig(ctx context.Context) (*domain.SlotConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListBySpecialistWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString, serviceID int64, durationMinutes int, serviceName string, servicePrice float64) (*domain.Booking, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache интерфейс инвалидации кэша доступности
type AvailabilityCache interface {
	InvalidateDay(specialistID int64, date time.Time)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
