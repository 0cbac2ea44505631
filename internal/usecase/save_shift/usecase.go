package save_shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	shiftRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/shift"
)

// UseCase use case сохранения смены с проверкой пересечений
//
// Две одновременные записи смен для одной пары (специалист, дата) не могут
// обе пройти проверку по устаревшему снимку: выборка существующих смен идет
// внутри сериализуемой транзакции с блокировкой строк
type UseCase struct {
	shiftRepo ShiftRepository
	txManager TransactionManager
	cache     AvailabilityCache
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo: shiftRepo,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// Execute выполняет use case сохранения смены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SaveShift: specialist=%d, date=%s, interval=%s-%s",
		req.SpecialistID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных и интервала - до любой записи
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveShift: validation failed: %v", err)
		return nil, err
	}

	candidate := domain.Interval{Start: req.StartTime, End: req.EndTime}

	var result *domain.WorkShift
	var previousShift *domain.WorkShift

	// 2. Проверка пересечений и запись - в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. В режиме редактирования убеждаемся, что смена существует
		// и принадлежит указанному специалисту
		if req.ShiftID != nil {
			existing, err := uc.shiftRepo.GetByID(txCtx, *req.ShiftID)
			if err != nil {
				if errors.Is(err, shiftRepo.ErrShiftNotFound) {
					return ErrShiftNotFound
				}
				uc.logger.Error("SaveShift: failed to get shift id=%d: %v", *req.ShiftID, err)
				return fmt.Errorf("%w: failed to get shift: %v", ErrInternal, err)
			}
			if existing.SpecialistID != req.SpecialistID {
				return ErrShiftNotFound
			}
			previousShift = existing
		}

		// 2.2. Все остальные смены на эту дату (строки блокируются FOR UPDATE)
		shifts, err := uc.shiftRepo.ListBySpecialistAndDate(txCtx, req.SpecialistID, req.Date)
		if err != nil {
			uc.logger.Error("SaveShift: failed to list shifts: %v", err)
			return fmt.Errorf("%w: failed to list shifts: %v", ErrInternal, err)
		}

		// 2.3. Проверяем пересечения; редактируемая смена из сравнения исключается.
		// Граничащие смены (end == start) пересечением не считаются
		for _, other := range shifts {
			if req.ShiftID != nil && other.ID == *req.ShiftID {
				continue
			}
			if candidate.Overlaps(other.Interval()) {
				uc.logger.Warn("SaveShift: interval %s conflicts with shift id=%d (%s)",
					candidate, other.ID, other.Interval())
				return fmt.Errorf("%w: conflicts with shift %s", ErrShiftOverlap, other.Interval())
			}
		}

		// 2.4. Записываем смену: автоматических сдвигов и разрезаний нет
		shift := &domain.WorkShift{
			SpecialistID: req.SpecialistID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		}

		if req.ShiftID != nil {
			shift.ID = *req.ShiftID
			result, err = uc.shiftRepo.Update(txCtx, shift)
		} else {
			result, err = uc.shiftRepo.Create(txCtx, shift)
		}
		if err != nil {
			uc.logger.Error("SaveShift: failed to persist shift: %v", err)
			return fmt.Errorf("%w: failed to persist shift: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Инвалидация кэша доступности: затронутая дата, а при переносе
	// отредактированной смены - и прежняя дата
	uc.cache.InvalidateDay(req.SpecialistID, req.Date)
	if previousShift != nil && !previousShift.Date.Equal(req.Date) {
		uc.cache.InvalidateDay(req.SpecialistID, previousShift.Date)
	}

	uc.logger.Info("SaveShift: saved shift id=%d for specialist=%d on %s",
		result.ID, result.SpecialistID, result.Date.Format(domain.DateFormat))

	return &Response{
		ID:           result.ID,
		SpecialistID: result.SpecialistID,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
