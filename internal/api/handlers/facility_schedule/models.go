package facility_schedule

import (
	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
)

// FacilityScheduleResponse недельное расписание заведения вместе с сеткой слотов
type FacilityScheduleResponse struct {
	Days               []models.FacilityDayResponse `json:"days"`
	GranularityMinutes int                          `json:"granularityMinutes"`
}

// UpdateFacilityScheduleRequest запрос на обновление расписания заведения
// Оба поля опциональны: можно менять только часы или только шаг сетки
type UpdateFacilityScheduleRequest struct {
	Days               []models.FacilityDayRequest `json:"days,omitempty"`
	GranularityMinutes *int                        `json:"granularityMinutes,omitempty"`
}

// BuildResponse собирает полный ответ из частей
func BuildResponse(hours *models.WeeklyHoursResponse, cfg *models.SlotConfigResponse) *FacilityScheduleResponse {
	resp := &FacilityScheduleResponse{
		Days: hours.Days,
	}
	if cfg != nil {
		resp.GranularityMinutes = cfg.GranularityMinutes
	}
	return resp
}
