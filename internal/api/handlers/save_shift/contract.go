package save_shift

import (
	"context"

	saveShift "github.com/velara/FMC-SchedulingService/internal/usecase/save_shift"
)

type SaveShiftUseCase interface {
	Execute(ctx context.Context, req *saveShift.Request) (*saveShift.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
