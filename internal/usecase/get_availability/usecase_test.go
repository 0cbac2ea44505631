package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	availabilityCache "github.com/velara/FMC-SchedulingService/internal/infra/cache/availability"
	facilityRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/facility"
	catalogClient "github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/velara/FMC-SchedulingService/pkg/ptr"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Фейки зависимостей; счетчики вызовов нужны для проверки работы кэша

type fakeShiftRepo struct {
	shifts []*domain.WorkShift
	calls  int
}

func (f *fakeShiftRepo) ListBySpecialistAndDate(_ context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error) {
	f.calls++
	var result []*domain.WorkShift
	for _, s := range f.shifts {
		if s.SpecialistID == specialistID && s.Date.Equal(date) {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeFacilityRepo struct {
	hours      map[time.Weekday]*domain.FacilityHours
	slotConfig *domain.SlotConfig
}

func (f *fakeFacilityRepo) GetHoursByWeekday(_ context.Context, weekday time.Weekday) (*domain.FacilityHours, error) {
	h, ok := f.hours[weekday]
	if !ok {
		return nil, facilityRepo.ErrHoursNotFound
	}
	return h, nil
}

func (f *fakeFacilityRepo) GetSlotConfig(_ context.Context) (*domain.SlotConfig, error) {
	if f.slotConfig == nil {
		return nil, facilityRepo.ErrConfigNotFound
	}
	return f.slotConfig, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) ListBySpecialistWithFilter(_ context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.SpecialistID != filter.SpecialistID {
			continue
		}
		if filter.StartDate != nil && b.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeCatalog struct {
	services map[int64]*catalogClient.Service
}

func (f *fakeCatalog) GetService(_ context.Context, serviceID int64) (*catalogClient.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogClient.ErrServiceNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fixture struct {
	shifts   *fakeShiftRepo
	facility *fakeFacilityRepo
	bookings *fakeBookingRepo
	catalog  *fakeCatalog
	cache    *availabilityCache.Cache
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		shifts: &fakeShiftRepo{},
		facility: &fakeFacilityRepo{
			hours:      map[time.Weekday]*domain.FacilityHours{},
			slotConfig: &domain.SlotConfig{GranularityMinutes: 30},
		},
		bookings: &fakeBookingRepo{},
		catalog: &fakeCatalog{
			services: map[int64]*catalogClient.Service{
				1: {ID: 1, Name: "Стрижка", DurationMinutes: 60, IsActive: true},
			},
		},
		cache: availabilityCache.NewCache(),
	}
	f.uc = NewUseCase(f.shifts, f.facility, f.bookings, f.catalog, f.cache, nopLogger{})
	return f
}

func TestExecute_ShiftsOverrideFacilityHours(t *testing.T) {
	f := newFixture()
	// Часы заведения шире смены: при явной смене они игнорируются
	f.facility.hours[time.Monday] = &domain.FacilityHours{
		Weekday: time.Monday, OpenTime: "08:00", CloseTime: "20:00",
	}
	f.shifts.shifts = []*domain.WorkShift{
		{ID: 1, SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "11:00"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, resp.Offers)
	assert.Equal(t, 4, resp.FreeCount)
	assert.False(t, resp.NotWorking)
	assert.False(t, resp.FullyBooked)
}

func TestExecute_FacilityHoursFallback(t *testing.T) {
	f := newFixture()
	f.facility.hours[time.Monday] = &domain.FacilityHours{
		Weekday: time.Monday, OpenTime: "10:00", CloseTime: "12:00",
	}

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, resp.Offers)
}

func TestExecute_NotWorking(t *testing.T) {
	f := newFixture()
	// Ни смен, ни часов заведения на понедельник

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.True(t, resp.NotWorking)
	assert.False(t, resp.FullyBooked)
	assert.Empty(t, resp.Offers)
	assert.Equal(t, 0, resp.FreeCount)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture()
	f.facility.hours[time.Monday] = &domain.FacilityHours{
		Weekday: time.Monday, IsClosed: true,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.True(t, resp.NotWorking)
}

func TestExecute_FullyBooked(t *testing.T) {
	f := newFixture()
	f.shifts.shifts = []*domain.WorkShift{
		{ID: 1, SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "10:00"},
	}
	// Одно бронирование на час закрывает оба получасовых слота
	f.bookings.bookings = []*domain.Booking{
		{ID: 50, SpecialistID: 7, Date: testDate, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.True(t, resp.FullyBooked)
	assert.False(t, resp.NotWorking)
	assert.Empty(t, resp.Offers)
}

func TestExecute_CacheHitSkipsRepos(t *testing.T) {
	f := newFixture()
	f.shifts.shifts = []*domain.WorkShift{
		{ID: 1, SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "11:00"},
	}

	req := &Request{SpecialistID: 7, Date: testDate}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.shifts.calls)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.shifts.calls, "повторный запрос идет из кэша")
	assert.Equal(t, 1, f.bookings.calls)
	assert.Equal(t, first.Offers, second.Offers)
}

func TestExecute_ExcludeBookingBypassesCache(t *testing.T) {
	f := newFixture()
	f.shifts.shifts = []*domain.WorkShift{
		{ID: 1, SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "10:00"},
	}
	f.bookings.bookings = []*domain.Booking{
		{ID: 50, SpecialistID: 7, Date: testDate, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	// Прогреваем кэш обычным запросом: день полностью занят
	warm, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})
	require.NoError(t, err)
	assert.True(t, warm.FullyBooked)

	// В режиме редактирования собственное бронирование слот не блокирует
	resp, err := f.uc.Execute(context.Background(), &Request{
		SpecialistID:     7,
		Date:             testDate,
		ExcludeBookingID: ptr.Ptr(int64(50)),
	})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Offers)
	assert.Equal(t, 2, f.shifts.calls, "режим редактирования не читает кэш")
}

func TestExecute_DefaultGranularityWhenConfigMissing(t *testing.T) {
	f := newFixture()
	f.facility.slotConfig = nil
	f.shifts.shifts = []*domain.WorkShift{
		{ID: 1, SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "10:00"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGranularityMinutes, resp.GranularityMinutes)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Offers)
}

func TestExecute_UnknownService(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Date:         testDate,
		ServiceID:    ptr.Ptr(int64(999)),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero specialist", &Request{Date: testDate}},
		{"missing date", &Request{SpecialistID: 7}},
		{"non-positive exclude id", &Request{SpecialistID: 7, Date: testDate, ExcludeBookingID: ptr.Ptr(int64(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
