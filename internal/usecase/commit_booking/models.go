package commit_booking

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Request модель запроса на коммит бронирования
// BookingID == nil - создание нового, иначе перенос существующего
type Request struct {
	BookingID    *int64           // ID переносимого бронирования (nil - создание)
	SpecialistID int64            // ID специалиста
	ServiceID    int64            // ID услуги (длительность берётся из каталога)
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Выбранный слот

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с закоммиченным бронированием
type Response struct {
	ID              int64            // ID бронирования
	SpecialistID    int64            // ID специалиста
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	CustomerName  string // Имя клиента
	CustomerPhone string // Телефон клиента

	// Денормализованные данные услуги
	ServiceName  string   // Название услуги
	ServicePrice float64  // Цена услуги
	Notes        *string  // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
