package save_shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	shiftRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/shift"
	"github.com/velara/FMC-SchedulingService/pkg/ptr"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Фейки зависимостей

type fakeShiftRepo struct {
	shifts  map[int64]*domain.WorkShift
	nextID  int64
	created []*domain.WorkShift
	updated []*domain.WorkShift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[int64]*domain.WorkShift), nextID: 1}
}

func (f *fakeShiftRepo) ListBySpecialistAndDate(_ context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error) {
	var result []*domain.WorkShift
	for _, s := range f.shifts {
		if s.SpecialistID == specialistID && s.Date.Equal(date) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id int64) (*domain.WorkShift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, shiftRepo.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *domain.WorkShift) (*domain.WorkShift, error) {
	shift.ID = f.nextID
	f.nextID++
	f.shifts[shift.ID] = shift
	f.created = append(f.created, shift)
	return shift, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift *domain.WorkShift) (*domain.WorkShift, error) {
	if _, ok := f.shifts[shift.ID]; !ok {
		return nil, shiftRepo.ErrShiftNotFound
	}
	f.shifts[shift.ID] = shift
	f.updated = append(f.updated, shift)
	return shift, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newTestUseCase(repo *fakeShiftRepo, cache *fakeCache) *UseCase {
	return NewUseCase(repo, fakeTxManager{}, cache, nopLogger{})
}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestExecute_CreatesShift(t *testing.T) {
	repo := newFakeShiftRepo()
	cache := &fakeCache{}
	uc := newTestUseCase(repo, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Date:         testDate,
		StartTime:    "09:00",
		EndTime:      "17:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, []string{"2026-03-16"}, cache.invalidated)
}

func TestExecute_RejectsOverlap(t *testing.T) {
	repo := newFakeShiftRepo()
	_, err := repo.Create(context.Background(), &domain.WorkShift{
		SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	uc := newTestUseCase(repo, &fakeCache{})

	_, err = uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Date:         testDate,
		StartTime:    "11:30",
		EndTime:      "13:00",
	})

	require.ErrorIs(t, err, ErrShiftOverlap)
	assert.Contains(t, err.Error(), "09:00-12:00", "конфликтующий интервал попадает в сообщение")
}

func TestExecute_AllowsBackToBack(t *testing.T) {
	repo := newFakeShiftRepo()
	_, err := repo.Create(context.Background(), &domain.WorkShift{
		SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	uc := newTestUseCase(repo, &fakeCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		SpecialistID: 7,
		Date:         testDate,
		StartTime:    "12:00",
		EndTime:      "15:00",
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
}

func TestExecute_EditExcludesSelf(t *testing.T) {
	repo := newFakeShiftRepo()
	existing, err := repo.Create(context.Background(), &domain.WorkShift{
		SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	uc := newTestUseCase(repo, &fakeCache{})

	// Расширяем собственную смену: пересечение с самой собой не ошибка
	resp, err := uc.Execute(context.Background(), &Request{
		ShiftID:      &existing.ID,
		SpecialistID: 7,
		Date:         testDate,
		StartTime:    "09:00",
		EndTime:      "14:00",
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.EndTime)
	assert.Len(t, repo.updated, 1)
}

func TestExecute_EditChecksOwnership(t *testing.T) {
	repo := newFakeShiftRepo()
	existing, err := repo.Create(context.Background(), &domain.WorkShift{
		SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	uc := newTestUseCase(repo, &fakeCache{})

	// Чужая смена выглядит как отсутствующая
	_, err = uc.Execute(context.Background(), &Request{
		ShiftID:      &existing.ID,
		SpecialistID: 99,
		Date:         testDate,
		StartTime:    "09:00",
		EndTime:      "12:00",
	})

	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestExecute_EditUnknownShift(t *testing.T) {
	uc := newTestUseCase(newFakeShiftRepo(), &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{
		ShiftID:      ptr.Ptr(int64(404)),
		SpecialistID: 7,
		Date:         testDate,
		StartTime:    "09:00",
		EndTime:      "12:00",
	})

	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestExecute_MoveInvalidatesBothDates(t *testing.T) {
	repo := newFakeShiftRepo()
	existing, err := repo.Create(context.Background(), &domain.WorkShift{
		SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	cache := &fakeCache{}
	uc := newTestUseCase(repo, cache)

	newDate := testDate.AddDate(0, 0, 1)
	_, err = uc.Execute(context.Background(), &Request{
		ShiftID:      &existing.ID,
		SpecialistID: 7,
		Date:         newDate,
		StartTime:    "09:00",
		EndTime:      "12:00",
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-03-17", "2026-03-16"}, cache.invalidated)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeShiftRepo(), &fakeCache{})

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "zero specialist",
			req:     &Request{Date: testDate, StartTime: "09:00", EndTime: "17:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{SpecialistID: 7, StartTime: "09:00", EndTime: "17:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed time",
			req:     &Request{SpecialistID: 7, Date: testDate, StartTime: "9am", EndTime: "17:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reversed interval",
			req:     &Request{SpecialistID: 7, Date: testDate, StartTime: "17:00", EndTime: "09:00"},
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "empty interval",
			req:     &Request{SpecialistID: 7, Date: testDate, StartTime: "09:00", EndTime: "09:00"},
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
