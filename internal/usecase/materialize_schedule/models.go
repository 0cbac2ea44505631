package materialize_schedule

import (
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// DefaultHorizonDays горизонт материализации по умолчанию (~два месяца)
const DefaultHorizonDays = 60

// MaxHorizonDays верхняя граница горизонта материализации
const MaxHorizonDays = 366

// Request модель запроса на материализацию недельного шаблона
// Явная, запускаемая пользователем пакетная операция - не фоновая джоба
type Request struct {
	SpecialistID int64                // ID специалиста
	HorizonDays  int                  // Горизонт вперед в днях (0 - дефолт)
	Template     []domain.TemplateDay // Недельный шаблон; пропущенные дни - выходные
}

// Response модель ответа с итогами материализации
type Response struct {
	SpecialistID  int64     // ID специалиста
	From          time.Time // Первая дата замененного периода (сегодня)
	To            time.Time // Последняя дата замененного периода
	DeletedShifts int64     // Сколько будущих смен было заменено
	CreatedShifts int       // Сколько смен записано из шаблона
}
