package materialize_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// UseCase use case материализации недельного шаблона в явные смены
//
// Шаблон разворачивается в конкретные строки смен на горизонт вперед.
// Старые будущие смены периода удаляются и заменяются целиком - частичных
// слияний нет, прошедшие даты не трогаются
type UseCase struct {
	shiftRepo    ShiftRepository
	txManager    TransactionManager
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:    shiftRepo,
		txManager:    txManager,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case материализации шаблона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MaterializeSchedule: specialist=%d, horizon=%d, templateDays=%d",
		req.SpecialistID, req.HorizonDays, len(req.Template))

	// 1. Валидация: интервалы шаблона корректны и не пересекаются внутри дня
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MaterializeSchedule: validation failed: %v", err)
		return nil, err
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = DefaultHorizonDays
	}

	// Шаблон индексируем по дню недели; пропущенные дни остаются выходными
	byWeekday := make(map[time.Weekday][]domain.Interval, len(req.Template))
	for _, day := range req.Template {
		byWeekday[day.Weekday] = day.Intervals
	}

	now := uc.timeProvider.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, horizon-1)

	var deleted int64
	var created int

	// 2. Замена периода атомарна: чтение доступности не должно увидеть
	// день с наполовину удаленными, наполовину записанными сменами
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = uc.shiftRepo.DeleteBySpecialistAndRange(txCtx, req.SpecialistID, from, to)
		if err != nil {
			uc.logger.Error("MaterializeSchedule: failed to delete existing shifts: %v", err)
			return fmt.Errorf("%w: failed to delete existing shifts: %v", ErrInternal, err)
		}

		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			intervals, ok := byWeekday[d.Weekday()]
			if !ok {
				continue
			}
			for _, iv := range intervals {
				shift := &domain.WorkShift{
					SpecialistID: req.SpecialistID,
					Date:         d,
					StartTime:    iv.Start,
					EndTime:      iv.End,
				}
				if _, err := uc.shiftRepo.Create(txCtx, shift); err != nil {
					uc.logger.Error("MaterializeSchedule: failed to create shift on %s: %v",
						d.Format(domain.DateFormat), err)
					return fmt.Errorf("%w: failed to create shift: %v", ErrInternal, err)
				}
				created++
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Кэш доступности специалиста больше не актуален целиком
	uc.cache.InvalidateSpecialist(req.SpecialistID)

	uc.logger.Info("MaterializeSchedule: specialist=%d replaced %d shifts with %d (%s..%s)",
		req.SpecialistID, deleted, created,
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return &Response{
		SpecialistID:  req.SpecialistID,
		From:          from,
		To:            to,
		DeletedShifts: deleted,
		CreatedShifts: created,
	}, nil
}
