package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	bookingRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/booking"
	facilityRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/facility"
	catalogClient "github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
)

// UseCase use case коммита бронирования: превращение предложенного слота
// в сохранённую запись
//
// Путь чтения (резолвинг -> генерация -> фильтрация) сам по себе не дает
// гарантии атомарности, поэтому запись защищена дважды: повторной проверкой
// доступности в сериализуемой транзакции и частичным уникальным индексом
// в БД - из двух одновременных коммитов одного слота выигрывает ровно один
type UseCase struct {
	shiftRepo     ShiftRepository
	facilityRepo  FacilityRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	cache         AvailabilityCache
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	facilityRepo FacilityRepository,
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:     shiftRepo,
		facilityRepo:  facilityRepo,
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		cache:         cache,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case коммита бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: specialist=%d, service=%d, date=%s, time=%s, mode=%s",
		req.SpecialistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, mode(req))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата в прошлом не бронируется
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CommitBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Услуга из каталога: длительность, название и цена на момент коммита
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CommitBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CommitBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var result *domain.Booking
	var previousDate *time.Time

	// 4. Перепроверка доступности и запись - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перенос: бронирование должно существовать и быть переносимым
		var existing *domain.Booking
		if req.BookingID != nil {
			existing, err = uc.bookingRepo.GetByID(txCtx, *req.BookingID)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					return ErrBookingNotFound
				}
				uc.logger.Error("CommitBooking: failed to get booking id=%d: %v", *req.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}
			// Перенос не меняет специалиста: все проверки доступности идут
			// по req.SpecialistID, поэтому чужое бронирование сюда не попадает
			if existing.SpecialistID != req.SpecialistID {
				uc.logger.Warn("CommitBooking: booking id=%d belongs to specialist=%d, not %d",
					existing.ID, existing.SpecialistID, req.SpecialistID)
				return ErrBookingNotFound
			}
			if !existing.CanBeRescheduled() {
				uc.logger.Warn("CommitBooking: booking id=%d in status %s cannot be rescheduled",
					existing.ID, existing.Status)
				return ErrCannotReschedule
			}
			previousDate = &existing.Date
		}

		// 4.2. Эффективные рабочие интервалы дня
		intervals, err := uc.resolveIntervals(txCtx, req.SpecialistID, req.Date)
		if err != nil {
			return err
		}
		if len(intervals) == 0 {
			uc.logger.Warn("CommitBooking: specialist=%d is not working on %s",
				req.SpecialistID, req.Date.Format(domain.DateFormat))
			return ErrNotWorking
		}

		// 4.3. Выбранное время должно быть валидным предложением
		granularity, err := uc.resolveGranularity(txCtx)
		if err != nil {
			return err
		}

		offers, err := domain.GenerateOffers(intervals, granularity)
		if err != nil {
			uc.logger.Error("CommitBooking: failed to generate offers: %v", err)
			return fmt.Errorf("%w: failed to generate offers: %v", ErrInternal, err)
		}

		if !domain.ContainsOffer(offers, req.StartTime) {
			uc.logger.Warn("CommitBooking: time %s is not an offerable slot", req.StartTime)
			return ErrSlotTaken
		}

		// 4.4. Слот не должен быть занят активным бронированием
		// (строки блокируются FOR UPDATE; при переносе своё бронирование не блокирует)
		filter := domain.SpecialistBookingsFilter{
			SpecialistID:    req.SpecialistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.ListBySpecialistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CommitBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		free := domain.FilterBookedOffers(offers, bookings, req.BookingID)
		if !domain.ContainsOffer(free, req.StartTime) {
			uc.logger.Warn("CommitBooking: slot %s on %s is already taken",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 4.5. Запись. Уникальный индекс БД - последний рубеж против гонки:
		// проигравший коммит получает ErrSlotTaken, а не перезаписывает победителя
		if req.BookingID != nil {
			result, err = uc.bookingRepo.Reschedule(
				txCtx,
				*req.BookingID,
				req.Date,
				req.StartTime,
				service.ID,
				service.DurationMinutes,
				service.Name,
				servicePrice(service),
			)
		} else {
			booking := &domain.Booking{
				SpecialistID:    req.SpecialistID,
				ServiceID:       req.ServiceID,
				Date:            req.Date,
				StartTime:       req.StartTime,
				DurationMinutes: service.DurationMinutes,
				Status:          domain.StatusPending,
				CustomerName:    req.CustomerName,
				CustomerPhone:   req.CustomerPhone,
				// Денормализация данных услуги для истории
				ServiceName:  service.Name,
				ServicePrice: servicePrice(service),
				Notes:        req.Notes,
			}
			result, err = uc.bookingRepo.Create(txCtx, booking)
		}

		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CommitBooking: lost the race for slot %s on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CommitBooking: failed to persist booking: %v", err)
			return fmt.Errorf("%w: failed to persist booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Инвалидация кэша доступности: целевая дата и, при переносе, исходная
	uc.cache.InvalidateDay(req.SpecialistID, req.Date)
	if previousDate != nil && !previousDate.Equal(req.Date) {
		uc.cache.InvalidateDay(req.SpecialistID, *previousDate)
	}

	uc.logger.Info("CommitBooking: committed booking id=%d, specialist=%d, date=%s, time=%s",
		result.ID, result.SpecialistID, result.Date.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

// resolveIntervals применяет правила резолвера смен для (специалист, дата)
func (uc *UseCase) resolveIntervals(ctx context.Context, specialistID int64, date time.Time) ([]domain.Interval, error) {
	shifts, err := uc.shiftRepo.ListBySpecialistAndDate(ctx, specialistID, date)
	if err != nil {
		uc.logger.Error("CommitBooking: failed to list shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to list shifts: %v", ErrInternal, err)
	}

	var hours *domain.FacilityHours
	if len(shifts) == 0 {
		hours, err = uc.facilityRepo.GetHoursByWeekday(ctx, date.Weekday())
		if err != nil && !errors.Is(err, facilityRepo.ErrHoursNotFound) {
			uc.logger.Error("CommitBooking: failed to get facility hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get facility hours: %v", ErrInternal, err)
		}
	}

	return domain.ResolveWorkingIntervals(shifts, hours), nil
}

// resolveGranularity читает гранулярность заведения, подставляя дефолт
func (uc *UseCase) resolveGranularity(ctx context.Context) (int, error) {
	config, err := uc.facilityRepo.GetSlotConfig(ctx)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrConfigNotFound) {
			return domain.DefaultGranularityMinutes, nil
		}
		uc.logger.Error("CommitBooking: failed to get slot config: %v", err)
		return 0, fmt.Errorf("%w: failed to get slot config: %v", ErrInternal, err)
	}
	return config.GranularityMinutes, nil
}

// servicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func servicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}

func mode(req *Request) string {
	if req.BookingID != nil {
		return "update"
	}
	return "create"
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		SpecialistID:    b.SpecialistID,
		ServiceID:       b.ServiceID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
