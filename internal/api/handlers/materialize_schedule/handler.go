package materialize_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	materializeSchedule "github.com/velara/FMC-SchedulingService/internal/usecase/materialize_schedule"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval     = "некорректный интервал шаблона"
	msgTemplateOverlap     = "интервалы шаблона пересекаются"
)

type Handler struct {
	useCase MaterializeScheduleUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/specialists/{specialistId}/schedule/materialize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/schedule/materialize - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var req MaterializeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialists/{id}/schedule/materialize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(specialistID)
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/schedule/materialize - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, materializeSchedule.ErrTemplateOverlap):
			h.logger.Warn("POST /specialists/{id}/schedule/materialize - Template overlap: specialist_id=%d",
				specialistID)
			handlers.RespondBadRequest(w, msgTemplateOverlap)

		case errors.Is(err, materializeSchedule.ErrInvalidInterval):
			h.logger.Warn("POST /specialists/{id}/schedule/materialize - Invalid interval: specialist_id=%d",
				specialistID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, materializeSchedule.ErrInvalidInput):
			h.logger.Warn("POST /specialists/{id}/schedule/materialize - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /specialists/{id}/schedule/materialize - Failed: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialists/{id}/schedule/materialize - OK: specialist_id=%d, deleted=%d, created=%d",
		specialistID, result.DeletedShifts, result.CreatedShifts)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
