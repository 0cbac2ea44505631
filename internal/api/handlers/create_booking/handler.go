package create_booking

import (
	"errors"
	"net/http"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	commitBooking "github.com/velara/FMC-SchedulingService/internal/usecase/commit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotTaken          = "выбранный слот занят или больше не существует"
	msgServiceNotFound    = "услуга не найдена"
	msgNotWorking         = "специалист не работает в выбранную дату"
	msgInvalidDate        = "дата бронирования уже прошла"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: specialist_id=%d, date=%s, time=%s",
				req.SpecialistID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, commitBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, commitBooking.ErrNotWorking):
			h.logger.Warn("POST /bookings - Specialist not working: specialist_id=%d, date=%s",
				req.SpecialistID, req.BookingDate)
			handlers.RespondBadRequest(w, msgNotWorking)

		case errors.Is(err, commitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: specialist_id=%d, date=%s",
				req.SpecialistID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed: specialist_id=%d, error=%v", req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, specialist_id=%d, date=%s, time=%s",
		result.ID, req.SpecialistID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
