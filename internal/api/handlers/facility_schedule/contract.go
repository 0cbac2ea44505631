package facility_schedule

import (
	"context"

	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeeklyHours(ctx context.Context) (*models.WeeklyHoursResponse, error)
	UpdateWeeklyHours(ctx context.Context, req *models.UpdateWeeklyHoursRequest) (*models.WeeklyHoursResponse, error)
	GetSlotConfig(ctx context.Context) (*models.SlotConfigResponse, error)
	UpdateSlotConfig(ctx context.Context, req *models.UpdateSlotConfigRequest) (*models.SlotConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
