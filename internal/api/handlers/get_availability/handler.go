package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	getAvailability "github.com/velara/FMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidParams       = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/availability
// Query params: date (обязательный), serviceId, excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(
		specialistID,
		query.Get("date"),
		query.Get("serviceId"),
		query.Get("excludeBookingId"),
	)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /specialists/{id}/availability - Service not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /specialists/{id}/availability - Failed: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/availability - OK: specialist_id=%d, date=%s, free=%d",
		specialistID, query.Get("date"), result.FreeCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
