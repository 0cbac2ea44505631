package save_shift

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание или редактирование смены
type Request struct {
	ShiftID      *int64           // ID редактируемой смены (nil - создание новой)
	SpecialistID int64            // ID специалиста
	Date         time.Time        // Дата смены (без времени)
	StartTime    types.TimeString // Начало смены
	EndTime      types.TimeString // Конец смены (исключительно)
}

// Response модель ответа с сохранённой сменой
type Response struct {
	ID           int64            // ID смены
	SpecialistID int64            // ID специалиста
	Date         time.Time        // Дата смены
	StartTime    types.TimeString // Начало смены
	EndTime      types.TimeString // Конец смены

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
