package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	bookingRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/booking"
	"github.com/velara/FMC-SchedulingService/internal/service/bookings/models"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings      map[int64]*domain.Booking
	statusUpdates map[int64]domain.BookingStatus
	cancelled     map[int64]string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		statusUpdates: make(map[int64]domain.BookingStatus),
		cancelled:     make(map[int64]string),
	}
	for _, b := range bookings {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListBySpecialistWithFilter(_ context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.SpecialistID != filter.SpecialistID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusUpdates[id] = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled[id] = reason
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateDay(specialistID int64, date time.Time) {
	f.invalidated = append(f.invalidated, date.Format(domain.DateFormat))
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		SpecialistID:    7,
		ServiceID:       1,
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		CustomerName:    "Иван Петров",
	}
}

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	assert.Empty(t, cache.invalidated, "подтверждение не меняет занятость слота")
}

func TestUpdateStatus_ForbiddenTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"pending to completed", domain.StatusPending, "completed"},
		{"completed to confirmed", domain.StatusCompleted, "confirmed"},
		{"completed to cancelled", domain.StatusCompleted, "cancelled"},
		{"cancelled to confirmed", domain.StatusCancelled, "confirmed"},
		{"confirmed to pending", domain.StatusConfirmed, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.from))
			svc := NewService(repo, &fakeCache{}, nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.statusUpdates)
		})
	}
}

func TestUpdateStatus_CancellationFreesSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-16"}, cache.invalidated)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeCache{}, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_PendingBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "клиент не придет"})

	require.NoError(t, err)
	assert.Equal(t, "клиент не придет", repo.cancelled[1])
	assert.Equal(t, []string{"2026-03-16"}, cache.invalidated)
}

func TestCancel_CompletedBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusCompleted))
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: strings.Repeat("a", domain.MaxCancellationReasonLength+1),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.cancelled)
}

func TestGetSpecialistBookings_FiltersInactive(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
	)
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	active, err := svc.GetSpecialistBookings(context.Background(), &models.GetSpecialistBookingsRequest{SpecialistID: 7})
	require.NoError(t, err)
	assert.Len(t, active.Bookings, 1)

	all, err := svc.GetSpecialistBookings(context.Background(), &models.GetSpecialistBookingsRequest{
		SpecialistID:    7,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)
}

func TestGetSpecialistBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeCache{}, nopLogger{})

	status := "archived"
	_, err := svc.GetSpecialistBookings(context.Background(), &models.GetSpecialistBookingsRequest{
		SpecialistID: 7,
		Status:       &status,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
