package catalogservice

// Service модель услуги из каталога заведения
// Длительность услуги определяет занимаемый бронированием интервал
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	IsActive        bool     `json:"isActive"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
