package facility

import "errors"

var (
	// ErrHoursNotFound возвращается, когда для дня недели нет записи расписания
	ErrHoursNotFound = errors.New("facility.repository: facility hours not found")

	// ErrConfigNotFound возвращается, когда конфигурация слотов не задана
	ErrConfigNotFound = errors.New("facility.repository: slot config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
