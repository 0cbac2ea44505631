package schedule

import "errors"

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("shift not found")

	// ErrInvalidInterval возвращается при некорректном интервале рабочих часов
	ErrInvalidInterval = errors.New("invalid working hours interval")

	// ErrInvalidGranularity возвращается при недопустимом шаге сетки слотов
	ErrInvalidGranularity = errors.New("invalid slot granularity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
