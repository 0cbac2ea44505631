package save_shift

import "errors"

var (
	// ErrInvalidInterval возвращается при пустом или перевёрнутом интервале (start >= end)
	ErrInvalidInterval = errors.New("save_shift: invalid shift interval")

	// ErrShiftOverlap возвращается, когда смена пересекается с уже существующей
	// Сообщение называет конфликтующий интервал
	ErrShiftOverlap = errors.New("save_shift: shift overlaps existing shift")

	// ErrShiftNotFound возвращается, когда редактируемая смена не найдена
	ErrShiftNotFound = errors.New("save_shift: shift not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_shift: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_shift: internal error")
)
