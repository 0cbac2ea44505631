package get_shifts

import (
	"context"

	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetShifts(ctx context.Context, req *models.GetShiftsRequest) (*models.ShiftListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
