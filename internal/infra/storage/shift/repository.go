package shift

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

// Repository репозиторий для работы со сменами специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую смену
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, shift *domain.WorkShift) (*domain.WorkShift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("work_shifts").
		Columns(
			"specialist_id",
			"shift_date",
			"start_time",
			"end_time",
		).
		Values(
			shift.SpecialistID,
			shift.Date,
			shift.StartTime,
			shift.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&shift.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	shift.CreatedAt = createdAt.Time
	shift.UpdatedAt = updatedAt.Time

	return shift, nil
}

// Update обновляет границы существующей смены
func (r *Repository) Update(ctx context.Context, shift *domain.WorkShift) (*domain.WorkShift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("work_shifts").
		Set("shift_date", shift.Date).
		Set("start_time", shift.StartTime).
		Set("end_time", shift.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shift.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	shift.CreatedAt = createdAt.Time
	shift.UpdatedAt = updatedAt.Time

	return shift, nil
}

// GetByID получает смену по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkShift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"shift_date",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("work_shifts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	shift, err := r.scanShiftRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shift: %v", ErrScanRow, err)
	}

	return shift, nil
}

// ListBySpecialistAndDate получает все смены специалиста на конкретную дату
// Отсортированы по времени начала.
// Если вызов идет внутри транзакции, строки блокируются через FOR UPDATE -
// это сериализует одновременные записи смен для одной пары (специалист, дата)
func (r *Repository) ListBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.WorkShift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"specialist_id",
		"shift_date",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("work_shifts").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.Eq{"shift_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialistAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialistAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

// ListBySpecialistAndRange получает смены специалиста за период [from, to]
// Используется экраном редактора расписания и bulk-материализацией
func (r *Repository) ListBySpecialistAndRange(ctx context.Context, specialistID int64, from, to time.Time) ([]*domain.WorkShift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"shift_date",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("work_shifts").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.GtOrEq{"shift_date": from}).
		Where(squirrel.LtOrEq{"shift_date": to}).
		OrderBy("shift_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialistAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecialistAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

// Delete удаляет смену
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("work_shifts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShiftNotFound
	}

	return nil
}

// DeleteBySpecialistAndRange удаляет все смены специалиста в периоде [from, to]
// Используется bulk-материализацией для замены будущего расписания.
// Прошлые смены остаются историей - за границы периода удаление не выходит
func (r *Repository) DeleteBySpecialistAndRange(ctx context.Context, specialistID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("work_shifts").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.GtOrEq{"shift_date": from}).
		Where(squirrel.LtOrEq{"shift_date": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySpecialistAndRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySpecialistAndRange - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySpecialistAndRange - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanShiftRow сканирует одну строку результата в смену
func (r *Repository) scanShiftRow(row *sql.Row) (*domain.WorkShift, error) {
	var shift domain.WorkShift
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&shift.ID,
		&shift.SpecialistID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	shift.CreatedAt = createdAt.Time
	shift.UpdatedAt = updatedAt.Time

	return &shift, nil
}

// scanShifts сканирует результаты запроса в слайс смен
func (r *Repository) scanShifts(rows *sql.Rows) ([]*domain.WorkShift, error) {
	shifts := make([]*domain.WorkShift, 0)

	for rows.Next() {
		var shift domain.WorkShift
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&shift.ID,
			&shift.SpecialistID,
			&shift.Date,
			&shift.StartTime,
			&shift.EndTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanShifts - scan row: %v", ErrScanRow, err)
		}

		shift.CreatedAt = createdAt.Time
		shift.UpdatedAt = updatedAt.Time

		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanShifts - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}
