package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	facilityRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/facility"
	shiftRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/shift"
	"github.com/velara/FMC-SchedulingService/internal/service/schedule/models"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// defaultListRangeDays период выборки смен по умолчанию, когда границы не заданы
const defaultListRangeDays = 30

// Service сервис для работы с расписанием: смены специалистов,
// рабочие часы заведения и сетка слотов
//
// Создание и редактирование смен живут в usecase save_shift - там нужна
// проверка пересечений в сериализуемой транзакции
type Service struct {
	shiftRepo    ShiftRepository
	facilityRepo FacilityRepository
	cache        AvailabilityCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	shiftRepo ShiftRepository,
	facilityRepo FacilityRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		facilityRepo: facilityRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetShifts возвращает смены специалиста за период
// Если границы периода не заданы, берется месяц начиная с сегодняшнего дня
func (s *Service) GetShifts(ctx context.Context, req *models.GetShiftsRequest) (*models.ShiftListResponse, error) {
	if req.SpecialistID <= 0 {
		return nil, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	from := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != nil {
		from = *req.StartDate
	}
	to := from.AddDate(0, 0, defaultListRangeDays)
	if req.EndDate != nil {
		to = *req.EndDate
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	s.logger.Info("GetShifts: specialist=%d, period=%s to %s",
		req.SpecialistID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	shifts, err := s.shiftRepo.ListBySpecialistAndRange(ctx, req.SpecialistID, from, to)
	if err != nil {
		s.logger.Error("GetShifts: repository error for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: GetShifts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainShiftList(shifts), nil
}

// DeleteShift удаляет смену по ID
func (s *Service) DeleteShift(ctx context.Context, shiftID int64) error {
	s.logger.Info("DeleteShift: deleting shift id=%d", shiftID)

	// Сначала читаем смену: для инвалидации кэша нужны специалист и дата
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			s.logger.Warn("DeleteShift: shift id=%d not found", shiftID)
			return ErrShiftNotFound
		}
		s.logger.Error("DeleteShift: repository error for shift id=%d: %v", shiftID, err)
		return fmt.Errorf("%w: DeleteShift - repository error: %v", ErrInternal, err)
	}

	if err := s.shiftRepo.Delete(ctx, shiftID); err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("DeleteShift: repository error for shift id=%d: %v", shiftID, err)
		return fmt.Errorf("%w: DeleteShift - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateDay(shift.SpecialistID, shift.Date)

	s.logger.Info("DeleteShift: deleted shift id=%d (specialist=%d, date=%s)",
		shiftID, shift.SpecialistID, shift.Date.Format(domain.DateFormat))
	return nil
}

// GetWeeklyHours возвращает недельное расписание заведения
func (s *Service) GetWeeklyHours(ctx context.Context) (*models.WeeklyHoursResponse, error) {
	hours, err := s.facilityRepo.ListHours(ctx)
	if err != nil {
		s.logger.Error("GetWeeklyHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeeklyHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(hours), nil
}

// UpdateWeeklyHours обновляет недельное расписание заведения
// Дни вне запроса не трогаются; закрытый день передается с isClosed=true
func (s *Service) UpdateWeeklyHours(ctx context.Context, req *models.UpdateWeeklyHoursRequest) (*models.WeeklyHoursResponse, error) {
	s.logger.Info("UpdateWeeklyHours: updating %d days", len(req.Days))

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: days must not be empty", ErrInvalidInput)
	}

	for _, day := range req.Days {
		hours, err := s.toDomainHours(day)
		if err != nil {
			s.logger.Warn("UpdateWeeklyHours: validation failed for weekday=%d: %v", day.Weekday, err)
			return nil, err
		}

		if _, err := s.facilityRepo.UpsertHours(ctx, hours); err != nil {
			s.logger.Error("UpdateWeeklyHours: repository error for weekday=%d: %v", day.Weekday, err)
			return nil, fmt.Errorf("%w: UpdateWeeklyHours - repository error: %v", ErrInternal, err)
		}
	}

	// Часы заведения - fallback для всех специалистов без явных смен
	s.cache.InvalidateAll()

	s.logger.Info("UpdateWeeklyHours: updated %d days", len(req.Days))
	return s.GetWeeklyHours(ctx)
}

// GetSlotConfig возвращает текущий шаг сетки слотов
// Если конфигурация не задана, возвращается значение по умолчанию
func (s *Service) GetSlotConfig(ctx context.Context) (*models.SlotConfigResponse, error) {
	cfg, err := s.facilityRepo.GetSlotConfig(ctx)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrConfigNotFound) {
			return models.FromDomainSlotConfig(&domain.SlotConfig{
				GranularityMinutes: domain.DefaultGranularityMinutes,
			}), nil
		}
		s.logger.Error("GetSlotConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSlotConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotConfig(cfg), nil
}

// UpdateSlotConfig меняет шаг сетки слотов
// Существующие бронирования не переписываются - меняется только то,
// какие предложения генерируются дальше
func (s *Service) UpdateSlotConfig(ctx context.Context, req *models.UpdateSlotConfigRequest) (*models.SlotConfigResponse, error) {
	s.logger.Info("UpdateSlotConfig: new granularity=%d", req.GranularityMinutes)

	if req.GranularityMinutes < domain.MinGranularityMinutes || req.GranularityMinutes > domain.MaxGranularityMinutes {
		s.logger.Warn("UpdateSlotConfig: granularity=%d out of range", req.GranularityMinutes)
		return nil, fmt.Errorf("%w: granularity must be in range [%d, %d] minutes",
			ErrInvalidGranularity, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}

	cfg, err := s.facilityRepo.UpdateSlotConfig(ctx, req.GranularityMinutes)
	if err != nil {
		s.logger.Error("UpdateSlotConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSlotConfig - repository error: %v", ErrInternal, err)
	}

	// Шаг сетки входит в ключ кэша, но старые ключи больше никогда не
	// будут запрошены - чистим целиком
	s.cache.InvalidateAll()

	s.logger.Info("UpdateSlotConfig: granularity updated to %d", cfg.GranularityMinutes)
	return models.FromDomainSlotConfig(cfg), nil
}

// toDomainHours валидирует и конвертирует день расписания в domain модель
func (s *Service) toDomainHours(day models.FacilityDayRequest) (*domain.FacilityHours, error) {
	if day.Weekday < 0 || day.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be in range [0, 6]", ErrInvalidInput)
	}

	hours := &domain.FacilityHours{
		Weekday:  time.Weekday(day.Weekday),
		IsClosed: day.IsClosed,
	}

	if day.IsClosed {
		return hours, nil
	}

	open, err := types.NewTimeStringFromString(day.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	closeT, err := types.NewTimeStringFromString(day.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !open.IsBefore(closeT) {
		return nil, fmt.Errorf("%w: openTime %s must be before closeTime %s", ErrInvalidInterval, open, closeT)
	}

	hours.OpenTime = open
	hours.CloseTime = closeT
	return hours, nil
}
