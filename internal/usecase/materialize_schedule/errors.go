package materialize_schedule

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале шаблона (start >= end)
	ErrInvalidInterval = errors.New("materialize_schedule: invalid template interval")

	// ErrTemplateOverlap возвращается, когда интервалы шаблона одного дня пересекаются
	ErrTemplateOverlap = errors.New("materialize_schedule: template intervals overlap")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("materialize_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("materialize_schedule: internal error")
)
