package materialize_schedule

import (
	"context"

	materializeSchedule "github.com/velara/FMC-SchedulingService/internal/usecase/materialize_schedule"
)

type MaterializeScheduleUseCase interface {
	Execute(ctx context.Context, req *materializeSchedule.Request) (*materializeSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
