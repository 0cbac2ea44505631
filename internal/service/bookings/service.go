package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	bookingRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/booking"
	"github.com/velara/FMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
//
// Создание и перенос бронирования живут в usecase commit_booking - там нужна
// сериализуемая транзакция и проверка свободности слота. Здесь остаются
// чтение и изменения статуса
type Service struct {
	bookingRepo BookingRepository
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetSpecialistBookings получает бронирования специалиста с фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых
//
// Примеры использования:
// - Все активные: GetSpecialistBookings(ctx, &GetSpecialistBookingsRequest{SpecialistID: 7})
// - На дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetSpecialistBookings(ctx context.Context, req *models.GetSpecialistBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSpecialistBookings: fetching bookings for specialist=%d", req.SpecialistID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.SpecialistID <= 0 {
		return nil, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpecialistBookings: invalid status=%v for specialist=%d", req.Status, req.SpecialistID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListBySpecialistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpecialistBookings: repository error for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: GetSpecialistBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpecialistBookings: fetched %d bookings for specialist=%d", len(bookings), req.SpecialistID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования с проверкой допустимости перехода:
// pending -> confirmed/cancelled, confirmed -> completed/cancelled
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, new status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Отмена освобождает слот; остальные статусы занятость не меняют
	if newStatus == domain.StatusCancelled {
		s.cache.InvalidateDay(booking.SpecialistID, booking.Date)
	}

	booking.Status = newStatus
	s.logger.Info("UpdateStatus: updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование с указанием причины
// Отменить можно только pending или confirmed бронирование
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long (max %d characters)",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", bookingID, booking.Status)
		return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Слот снова свободен - кэш доступности на эту дату устарел
	s.cache.InvalidateDay(booking.SpecialistID, booking.Date)

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)
	return nil
}
