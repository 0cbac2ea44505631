package materialize_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// Фейки зависимостей

type fakeShiftRepo struct {
	deleted     int64
	deleteRange [2]time.Time
	created     []*domain.WorkShift
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *domain.WorkShift) (*domain.WorkShift, error) {
	shift.ID = int64(len(f.created) + 1)
	f.created = append(f.created, shift)
	return shift, nil
}

func (f *fakeShiftRepo) DeleteBySpecialistAndRange(_ context.Context, specialistID int64, from, to time.Time) (int64, error) {
	f.deleteRange = [2]time.Time{from, to}
	return f.deleted, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) InvalidateSpecialist(specialistID int64) {
	f.invalidated = append(f.invalidated, specialistID)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var testNow = time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC)

func TestExecute_ExpandsTemplate(t *testing.T) {
	repo := &fakeShiftRepo{deleted: 3}
	cache := &fakeCache{}
	uc := NewUseCase(repo, fakeTxManager{}, cache, fixedClock{now: testNow}, nopLogger{})

	// Пн: два интервала, ср: один; горизонт - ровно одна неделя
	resp, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		HorizonDays:  7,
		Template: []domain.TemplateDay{
			{Weekday: time.Monday, Intervals: []domain.Interval{
				{Start: "09:00", End: "13:00"},
				{Start: "14:00", End: "18:00"},
			}},
			{Weekday: time.Wednesday, Intervals: []domain.Interval{
				{Start: "10:00", End: "16:00"},
			}},
		},
	})

	require.NoError(t, err)
	// Одна неделя с понедельника: один пн (2 смены) и одна ср (1 смена)
	assert.Equal(t, 3, resp.CreatedShifts)
	assert.Equal(t, int64(3), resp.DeletedShifts)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), resp.From)
	assert.Equal(t, time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), resp.To)

	require.Len(t, repo.created, 3)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), repo.created[0].Date)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), repo.created[2].Date)

	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestExecute_DefaultHorizon(t *testing.T) {
	repo := &fakeShiftRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, fixedClock{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Template: []domain.TemplateDay{
			{Weekday: time.Monday, Intervals: []domain.Interval{{Start: "09:00", End: "17:00"}}},
		},
	})

	require.NoError(t, err)
	wantTo := resp.From.AddDate(0, 0, DefaultHorizonDays-1)
	assert.Equal(t, wantTo, resp.To)
	assert.Equal(t, resp.From, repo.deleteRange[0])
	assert.Equal(t, wantTo, repo.deleteRange[1])
}

func TestExecute_SkippedWeekdaysStayEmpty(t *testing.T) {
	repo := &fakeShiftRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, &fakeCache{}, fixedClock{now: testNow}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		HorizonDays:  14,
		Template: []domain.TemplateDay{
			{Weekday: time.Friday, Intervals: []domain.Interval{{Start: "09:00", End: "12:00"}}},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	for _, s := range repo.created {
		assert.Equal(t, time.Friday, s.Date.Weekday())
	}
}

func TestExecute_TemplateOverlap(t *testing.T) {
	uc := NewUseCase(&fakeShiftRepo{}, fakeTxManager{}, &fakeCache{}, fixedClock{now: testNow}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Template: []domain.TemplateDay{
			{Weekday: time.Monday, Intervals: []domain.Interval{
				{Start: "09:00", End: "13:00"},
				{Start: "12:00", End: "18:00"},
			}},
		},
	})

	assert.ErrorIs(t, err, ErrTemplateOverlap)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := NewUseCase(&fakeShiftRepo{}, fakeTxManager{}, &fakeCache{}, fixedClock{now: testNow}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Template: []domain.TemplateDay{
			{Weekday: time.Monday, Intervals: []domain.Interval{
				{Start: "13:00", End: "09:00"},
			}},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeShiftRepo{}, fakeTxManager{}, &fakeCache{}, fixedClock{now: testNow}, nopLogger{})

	monday := []domain.TemplateDay{
		{Weekday: time.Monday, Intervals: []domain.Interval{{Start: "09:00", End: "17:00"}}},
	}

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero specialist", &Request{Template: monday}},
		{"empty template", &Request{SpecialistID: 7}},
		{"horizon too large", &Request{SpecialistID: 7, HorizonDays: MaxHorizonDays + 1, Template: monday}},
		{"negative horizon", &Request{SpecialistID: 7, HorizonDays: -1, Template: monday}},
		{"duplicate weekday", &Request{SpecialistID: 7, Template: append(append([]domain.TemplateDay{}, monday...), monday...)}},
		{"weekday out of range", &Request{SpecialistID: 7, Template: []domain.TemplateDay{
			{Weekday: time.Weekday(7), Intervals: []domain.Interval{{Start: "09:00", End: "17:00"}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
