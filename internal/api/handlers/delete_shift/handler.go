package delete_shift

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidShiftID = "некорректный ID смены"
	msgShiftNotFound  = "смена не найдена"
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

// Handle DELETE /api/v1/shifts/{shiftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /shifts/{id} - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	if err := h.service.DeleteShift(r.Context(), shiftID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrShiftNotFound):
			h.logger.Warn("DELETE /shifts/{id} - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		default:
			h.logger.Error("DELETE /shifts/{id} - Failed: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shifts/{id} - Deleted: shift_id=%d", shiftID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
