package facility

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	"github.com/velara/FMC-SchedulingService/pkg/dbmetrics"
	"github.com/velara/FMC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с расписанием заведения:
// часы работы по дням недели и гранулярность слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания заведения
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListHours получает часы работы заведения для всех дней недели (0-6 записей)
func (r *Repository) ListHours(ctx context.Context) ([]*domain.FacilityHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"open_time",
		"close_time",
		"is_closed",
		"created_at",
		"updated_at",
	).
		From("facility_hours").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.FacilityHours, 0, 7)

	for rows.Next() {
		var h domain.FacilityHours
		var weekday int
		var openTime, closeTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&weekday,
			&openTime,
			&closeTime,
			&h.IsClosed,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListHours - scan row: %v", ErrScanRow, err)
		}

		h.Weekday = time.Weekday(weekday)
		if openTime.Valid {
			if err := h.OpenTime.Scan(openTime.String); err != nil {
				return nil, fmt.Errorf("%w: ListHours - parse open_time: %v", ErrScanRow, err)
			}
		}
		if closeTime.Valid {
			if err := h.CloseTime.Scan(closeTime.String); err != nil {
				return nil, fmt.Errorf("%w: ListHours - parse close_time: %v", ErrScanRow, err)
			}
		}
		h.CreatedAt = createdAt.Time
		h.UpdatedAt = updatedAt.Time

		hours = append(hours, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetHoursByWeekday получает часы работы заведения на конкретный день недели
// Если запись отсутствует, возвращает ErrHoursNotFound - для резолвера это
// эквивалентно закрытому дню
func (r *Repository) GetHoursByWeekday(ctx context.Context, weekday time.Weekday) (*domain.FacilityHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"open_time",
		"close_time",
		"is_closed",
		"created_at",
		"updated_at",
	).
		From("facility_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHoursByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.FacilityHours
	var wd int
	var openTime, closeTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&wd,
		&openTime,
		&closeTime,
		&h.IsClosed,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHoursByWeekday - scan hours: %v", ErrScanRow, err)
	}

	h.Weekday = time.Weekday(wd)
	if openTime.Valid {
		if err := h.OpenTime.Scan(openTime.String); err != nil {
			return nil, fmt.Errorf("%w: GetHoursByWeekday - parse open_time: %v", ErrScanRow, err)
		}
	}
	if closeTime.Valid {
		if err := h.CloseTime.Scan(closeTime.String); err != nil {
			return nil, fmt.Errorf("%w: GetHoursByWeekday - parse close_time: %v", ErrScanRow, err)
		}
	}
	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}

// UpsertHours создает или обновляет часы работы для дня недели
// Запись на день недели одна - конфликт по weekday разрешается обновлением
func (r *Repository) UpsertHours(ctx context.Context, hours *domain.FacilityHours) (*domain.FacilityHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facility_hours").
		Columns(
			"weekday",
			"open_time",
			"close_time",
			"is_closed",
		).
		Values(
			int(hours.Weekday),
			hours.OpenTime, // зануленное время уходит в NULL через driver.Valuer
			hours.CloseTime,
			hours.IsClosed,
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_closed = EXCLUDED.is_closed,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - execute upsert: %v", ErrExecQuery, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return hours, nil
}

// GetSlotConfig получает гранулярность слотов заведения
// Конфигурация хранится одной строкой; если её нет, возвращает ErrConfigNotFound
func (r *Repository) GetSlotConfig(ctx context.Context) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"granularity_minutes",
		"updated_at",
	).
		From("facility_slot_config").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotConfig - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.SlotConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.GranularityMinutes,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotConfig - scan config: %v", ErrScanRow, err)
	}

	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// UpdateSlotConfig записывает новую гранулярность слотов
// Существующие бронирования при этом не пересчитываются
func (r *Repository) UpdateSlotConfig(ctx context.Context, granularityMinutes int) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facility_slot_config").
		Columns("id", "granularity_minutes").
		Values(1, granularityMinutes).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			granularity_minutes = EXCLUDED.granularity_minutes,
			updated_at = NOW()
		RETURNING granularity_minutes, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSlotConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	var config domain.SlotConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.GranularityMinutes,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSlotConfig - execute upsert: %v", ErrExecQuery, err)
	}

	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
