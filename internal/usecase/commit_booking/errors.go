package commit_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("commit_booking: service not found")

	// ErrBookingNotFound возвращается, когда переносимое бронирование не найдено
	ErrBookingNotFound = errors.New("commit_booking: booking not found")

	// ErrNotWorking возвращается при попытке бронирования на день без рабочих интервалов
	ErrNotWorking = errors.New("commit_booking: specialist is not working on this date")

	// ErrSlotTaken возвращается, когда коммит проиграл гонку или целевой слот
	// больше не существует. Клиент обязан перечитать доступность перед повтором
	ErrSlotTaken = errors.New("commit_booking: slot is taken or no longer exists")

	// ErrCannotReschedule возвращается, когда бронирование нельзя перенести
	// (завершено или отменено)
	ErrCannotReschedule = errors.New("commit_booking: booking cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной дате бронирования (в прошлом)
	ErrInvalidDate = errors.New("commit_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
