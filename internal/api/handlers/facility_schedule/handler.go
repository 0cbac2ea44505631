package facility_schedule

import (
	"errors"
	"net/http"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "время открытия должно быть раньше времени закрытия"
	msgInvalidGranularity = "недопустимый шаг сетки слотов"
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

// HandleGet GET /api/v1/facility/schedule
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	hours, err := h.service.GetWeeklyHours(r.Context())
	if err != nil {
		h.logger.Error("GET /facility/schedule - Failed to get hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	cfg, err := h.service.GetSlotConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /facility/schedule - Failed to get slot config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facility/schedule - OK: days=%d, granularity=%d",
		len(hours.Days), cfg.GranularityMinutes)
	handlers.RespondJSON(w, http.StatusOK, BuildResponse(hours, cfg))
}

// HandleUpdate PUT /api/v1/facility/schedule
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateFacilityScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facility/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Days) > 0 {
		if _, err := h.service.UpdateWeeklyHours(r.Context(), &models.UpdateWeeklyHoursRequest{Days: req.Days}); err != nil {
			switch {
			case errors.Is(err, schedule.ErrInvalidInterval):
				h.logger.Warn("PUT /facility/schedule - Invalid interval: %v", err)
				handlers.RespondBadRequest(w, msgInvalidInterval)

			case errors.Is(err, schedule.ErrInvalidInput):
				h.logger.Warn("PUT /facility/schedule - Invalid input: %v", err)
				handlers.RespondBadRequest(w, msgInvalidRequestBody)

			default:
				h.logger.Error("PUT /facility/schedule - Failed to update hours: %v", err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	if req.GranularityMinutes != nil {
		updateReq := &models.UpdateSlotConfigRequest{GranularityMinutes: *req.GranularityMinutes}
		if _, err := h.service.UpdateSlotConfig(r.Context(), updateReq); err != nil {
			switch {
			case errors.Is(err, schedule.ErrInvalidGranularity):
				h.logger.Warn("PUT /facility/schedule - Invalid granularity: %d", *req.GranularityMinutes)
				handlers.RespondBadRequest(w, msgInvalidGranularity)

			default:
				h.logger.Error("PUT /facility/schedule - Failed to update slot config: %v", err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	h.logger.Info("PUT /facility/schedule - Updated: days=%d, granularity=%v",
		len(req.Days), req.GranularityMinutes)
	h.HandleGet(w, r)
}
