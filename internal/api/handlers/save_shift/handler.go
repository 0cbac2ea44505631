package save_shift

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
	saveShift "github.com/velara/FMC-SchedulingService/internal/usecase/save_shift"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidShiftID      = "некорректный ID смены"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInterval     = "начало смены должно быть раньше конца"
	msgShiftOverlap        = "смена пересекается с существующей сменой"
	msgShiftNotFound       = "смена не найдена"
)

type Handler struct {
	useCase SaveShiftUseCase
	logger  Logger
}

func NewHandler(useCase SaveShiftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/specialists/{specialistId}/shifts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialistID, err := strconv.ParseInt(vars["specialistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/shifts - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	h.save(w, r, specialistID, nil)
}

// HandleUpdate PUT /api/v1/shifts/{shiftId}
// specialistId приходит в теле запроса
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /shifts/{id} - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	h.save(w, r, 0, &shiftID)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, specialistID int64, shiftID *int64) {
	var req SaveShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("SaveShift - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if specialistID == 0 {
		specialistID = req.SpecialistID
	}

	useCaseReq, err := req.ToUseCaseRequest(specialistID, shiftID)
	if err != nil {
		h.logger.Warn("SaveShift - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, saveShift.ErrShiftOverlap):
			h.logger.Warn("SaveShift - Overlap: specialist_id=%d, date=%s", specialistID, req.Date)
			handlers.RespondConflict(w, msgShiftOverlap)

		case errors.Is(err, saveShift.ErrShiftNotFound):
			h.logger.Warn("SaveShift - Shift not found: shift_id=%v", shiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, saveShift.ErrInvalidInterval):
			h.logger.Warn("SaveShift - Invalid interval: specialist_id=%d, %s-%s",
				specialistID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, saveShift.ErrInvalidInput):
			h.logger.Warn("SaveShift - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("SaveShift - Failed: specialist_id=%d, error=%v", specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if shiftID == nil {
		status = http.StatusCreated
	}

	h.logger.Info("SaveShift - Saved: shift_id=%d, specialist_id=%d, date=%s",
		result.ID, result.SpecialistID, req.Date)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
