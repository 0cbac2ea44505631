package save_shift

import (
	"context"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	// ListBySpecialistAndDate получает все смены специалиста на дату
	// Внутри транзакции выборка блокирует строки (FOR UPDATE)
	ListBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkShift, error)
	Create(ctx context.Context, shift *domain.WorkShift) (*domain.WorkShift, error)
	Update(ctx context.Context, shift *domain.WorkShift) (*domain.WorkShift, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache интерфейс инвалидации кэша доступности
type AvailabilityCache interface {
	InvalidateDay(specialistID int64, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
