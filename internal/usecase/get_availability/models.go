package get_availability

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SpecialistID     int64     // ID специалиста
	Date             time.Time // Дата для расчета доступности (без времени)
	ServiceID        *int64    // ID услуги (опционально, только валидация по каталогу)
	ExcludeBookingID *int64    // ID редактируемого бронирования - не блокирует свой слот
}

// Response модель ответа со списком доступных слотов
type Response struct {
	SpecialistID       int64              // ID специалиста
	Date               time.Time          // Дата, на которую запрашивалась доступность
	GranularityMinutes int                // Применённая гранулярность слотов
	Offers             []types.TimeString // Свободные времена начала, по возрастанию
	FreeCount          int                // Количество свободных слотов ("N slots free")
	FullyBooked        bool               // День рабочий, но все слоты заняты
	NotWorking         bool               // Специалист в этот день не работает
}
