package get_shifts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	"github.com/velara/FMC-SchedulingService/internal/domain"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/shifts
// Query params: from, to - границы периода YYYY-MM-DD (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/shifts - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	req := &models.GetShiftsRequest{SpecialistID: specialistID}

	query := r.URL.Query()
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /specialists/{id}/shifts - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.StartDate = &from
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /specialists/{id}/shifts - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EndDate = &to
	}

	result, err := h.service.GetShifts(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/shifts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /specialists/{id}/shifts - Failed: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/shifts - OK: specialist_id=%d, shifts=%d",
		specialistID, len(result.Shifts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
