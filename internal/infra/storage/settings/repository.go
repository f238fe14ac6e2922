package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/dbmetrics"
	"github.com/silwerlining/SLP-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий ограничений расписания и блокировок
// booking_settings хранится единственной строкой (id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие ограничения расписания
func (r *Repository) Get(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"buffer_minutes",
		"min_lead_days",
		"max_advance_days",
		"session_duration_minutes",
		"weekend_surcharge",
		"holiday_dates",
		"updated_at",
	).
		From("booking_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BufferMinutes,
		&s.MinLeadDays,
		&s.MaxAdvanceDays,
		&s.SessionDurationMinutes,
		&s.WeekendSurcharge,
		pq.Array(&s.HolidayDates),
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет ограничения расписания (вставка или полная замена единственной строки)
func (r *Repository) Upsert(ctx context.Context, s *domain.BookingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"id",
			"buffer_minutes",
			"min_lead_days",
			"max_advance_days",
			"session_duration_minutes",
			"weekend_surcharge",
			"holiday_dates",
		).
		Values(
			1,
			s.BufferMinutes,
			s.MinLeadDays,
			s.MaxAdvanceDays,
			s.SessionDurationMinutes,
			s.WeekendSurcharge,
			pq.Array(s.HolidayDates),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_lead_days = EXCLUDED.min_lead_days,
			max_advance_days = EXCLUDED.max_advance_days,
			session_duration_minutes = EXCLUDED.session_duration_minutes,
			weekend_surcharge = EXCLUDED.weekend_surcharge,
			holiday_dates = EXCLUDED.holiday_dates,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateBlockedDate закрывает целый день для бронирований
func (r *Repository) CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("block_date", "reason").
		Values(block.Date, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetBlockedDates получает закрытые дни за период [startDate, endDate]
func (r *Repository) GetBlockedDates(ctx context.Context, startDate, endDate string) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "block_date", "reason", "created_at").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"block_date": startDate}).
		Where(squirrel.LtOrEq{"block_date": endDate}).
		OrderBy("block_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var block domain.BlockedDate
		var createdAt sql.NullTime
		if err := rows.Scan(&block.ID, &block.Date, &block.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedDates - scan row: %v", ErrScanRow, err)
		}
		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteBlockedDate снимает блокировку дня
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "blocked_dates", id, "DeleteBlockedDate")
}

// CreateBlockedSlot закрывает один слот (дата, время)
func (r *Repository) CreateBlockedSlot(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "start_time", "reason").
		Values(block.Date, block.StartTime, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetBlockedSlotsByDateRange получает точечные блокировки за период [startDate, endDate]
func (r *Repository) GetBlockedSlotsByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "block_date", "start_time", "reason", "created_at").
		From("blocked_slots").
		Where(squirrel.GtOrEq{"block_date": startDate}).
		Where(squirrel.LtOrEq{"block_date": endDate}).
		OrderBy("block_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var block domain.BlockedSlot
		var createdAt sql.NullTime
		if err := rows.Scan(&block.ID, &block.Date, &block.StartTime, &block.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedSlotsByDateRange - scan row: %v", ErrScanRow, err)
		}
		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsByDateRange - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteBlockedSlot снимает блокировку слота
func (r *Repository) DeleteBlockedSlot(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "blocked_slots", id, "DeleteBlockedSlot")
}

func (r *Repository) deleteByID(ctx context.Context, table string, id int64, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
