package schedule

import (
	"context"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkShift, error)
	ListBySpecialistAndRange(ctx context.Context, specialistID int64, from, to time.Time) ([]*domain.WorkShift, error)
	Delete(ctx context.Context, id int64) error
}

// FacilityRepository интерфейс репозитория расписания заведения
type FacilityRepository interface {
	ListHours(ctx context.Context) ([]*domain.FacilityHours, error)
	UpsertHours(ctx context.Context, hours *domain.FacilityHours) (*domain.FacilityHours, error)
	GetSlotConfig(ctx context.Context) (*domain.SlotConfig, error)
	UpdateSlotConfig(ctx context.Context, granularityMinutes int) (*domain.SlotConfig, error)
}

// AvailabilityCache интерфейс инвалидации кэша доступности
type AvailabilityCache interface {
	InvalidateDay(specialistID int64, date time.Time)
	InvalidateAll()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
