package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	availabilityCache "github.com/velara/FMC-SchedulingService/internal/infra/cache/availability"
	facilityRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/facility"
	catalogClient "github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// UseCase use case расчета доступности: резолвинг смен, генерация слотов,
// фильтрация по занятым бронированиям
type UseCase struct {
	shiftRepo     ShiftRepository
	facilityRepo  FacilityRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	cache         AvailabilityCache
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	facilityRepo FacilityRepository,
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:     shiftRepo,
		facilityRepo:  facilityRepo,
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		cache:         cache,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Путь чтения не имеет побочных эффектов и безопасен для параллельных вызовов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: specialist=%d, date=%s",
		req.SpecialistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга влияет только на валидацию запроса, не на расчет слотов
	if req.ServiceID != nil {
		if _, err := uc.catalogClient.GetService(ctx, *req.ServiceID); err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailability: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 3. Гранулярность слотов заведения (дефолт, если не настроена)
	granularity, err := uc.resolveGranularity(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Кэш применим только для обычных запросов: режим редактирования
	// бронирования исключает собственный слот и в кэш не попадает
	cacheKey := availabilityCache.Key{
		SpecialistID:       req.SpecialistID,
		Date:               req.Date.Format(domain.DateFormat),
		GranularityMinutes: granularity,
	}
	cacheable := req.ExcludeBookingID == nil

	if cacheable {
		if entry, ok := uc.cache.Get(cacheKey); ok {
			uc.logger.Info("GetAvailability: cache hit specialist=%d, date=%s",
				req.SpecialistID, cacheKey.Date)
			return uc.toResponse(req, granularity, entry), nil
		}
	}

	// 5. Рассчитываем доступность
	entry, err := uc.compute(ctx, req, granularity)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.cache.Set(cacheKey, *entry)
	}

	uc.logger.Info("GetAvailability: specialist=%d, date=%s, free=%d, notWorking=%v, fullyBooked=%v",
		req.SpecialistID, cacheKey.Date, len(entry.Offers), entry.NotWorking, entry.FullyBooked)

	return uc.toResponse(req, granularity, *entry), nil
}

// compute выполняет полный конвейер: смены -> интервалы -> слоты -> фильтр
func (uc *UseCase) compute(ctx context.Context, req *Request, granularity int) (*availabilityCache.Entry, error) {
	// Явные смены на дату - единственный источник правды для этого дня
	shifts, err := uc.shiftRepo.ListBySpecialistAndDate(ctx, req.SpecialistID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to list shifts: %v", ErrInternal, err)
	}

	// Fallback на часы работы заведения нужен только при отсутствии смен
	var hours *domain.FacilityHours
	if len(shifts) == 0 {
		hours, err = uc.facilityRepo.GetHoursByWeekday(ctx, req.Date.Weekday())
		if err != nil && !errors.Is(err, facilityRepo.ErrHoursNotFound) {
			uc.logger.Error("GetAvailability: failed to get facility hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get facility hours: %v", ErrInternal, err)
		}
	}

	intervals := domain.ResolveWorkingIntervals(shifts, hours)

	// Пустой день - валидное состояние, а не ошибка
	if len(intervals) == 0 {
		return &availabilityCache.Entry{
			Offers:      []types.TimeString{},
			NotWorking:  true,
			FullyBooked: false,
		}, nil
	}

	offers, err := domain.GenerateOffers(intervals, granularity)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate offers: %v", err)
		return nil, fmt.Errorf("%w: failed to generate offers: %v", ErrInternal, err)
	}

	// Блокирующие бронирования этого дня (отменённые слот не занимают)
	filter := domain.SpecialistBookingsFilter{
		SpecialistID:    req.SpecialistID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.ListBySpecialistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	free := domain.FilterBookedOffers(offers, bookings, req.ExcludeBookingID)

	return &availabilityCache.Entry{
		Offers:      free,
		NotWorking:  false,
		FullyBooked: len(free) == 0,
	}, nil
}

// resolveGranularity читает гранулярность заведения, подставляя дефолт
func (uc *UseCase) resolveGranularity(ctx context.Context) (int, error) {
	config, err := uc.facilityRepo.GetSlotConfig(ctx)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrConfigNotFound) {
			return domain.DefaultGranularityMinutes, nil
		}
		uc.logger.Error("GetAvailability: failed to get slot config: %v", err)
		return 0, fmt.Errorf("%w: failed to get slot config: %v", ErrInternal, err)
	}
	return config.GranularityMinutes, nil
}

func (uc *UseCase) toResponse(req *Request, granularity int, entry availabilityCache.Entry) *Response {
	return &Response{
		SpecialistID:       req.SpecialistID,
		Date:               req.Date,
		GranularityMinutes: granularity,
		Offers:             entry.Offers,
		FreeCount:          len(entry.Offers),
		FullyBooked:        entry.FullyBooked,
		NotWorking:         entry.NotWorking,
	}
}
