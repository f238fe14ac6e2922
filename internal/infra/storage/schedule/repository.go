package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/dbmetrics"
	"github.com/silwerlining/SLP-BookingService/pkg/psqlbuilder"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// Repository репозиторий недельного шаблона расписания и разовых слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplateSlots получает все слоты недельного шаблона
func (r *Repository) GetTemplateSlots(ctx context.Context) ([]*domain.TemplateSlot, error) {
	return r.getTemplateSlots(ctx, nil)
}

// GetTemplateSlotsByCategory получает слоты шаблона для категории съёмки
func (r *Repository) GetTemplateSlotsByCategory(ctx context.Context, category string) ([]*domain.TemplateSlot, error) {
	return r.getTemplateSlots(ctx, &category)
}

func (r *Repository) getTemplateSlots(ctx context.Context, category *string) ([]*domain.TemplateSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "session_category", "day_id", "start_time").
		From("schedule_templates").
		OrderBy("session_category ASC, day_id ASC, start_time ASC")

	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"session_category": *category})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getTemplateSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTemplateSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TemplateSlot, 0)
	for rows.Next() {
		var slot domain.TemplateSlot
		if err := rows.Scan(&slot.ID, &slot.SessionCategory, &slot.DayID, &slot.StartTime); err != nil {
			return nil, fmt.Errorf("%w: getTemplateSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTemplateSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetDaySlots получает отсортированные времена слотов шаблона для (категория, день недели)
func (r *Repository) GetDaySlots(ctx context.Context, category string, dayID int) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("schedule_templates").
		Where(squirrel.Eq{"session_category": category, "day_id": dayID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetDaySlots - scan row: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDaySlots - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ReplaceDaySlots заменяет слоты шаблона для (категория, день недели) на переданный набор
// Вызывается внутри транзакции: удаление и вставка должны быть атомарны
func (r *Repository) ReplaceDaySlots(ctx context.Context, category string, dayID int, times []types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("schedule_templates").
		Where(squirrel.Eq{"session_category": category, "day_id": dayID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDaySlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDaySlots - execute delete: %v", ErrExecQuery, err)
	}

	if len(times) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("schedule_templates").
		Columns("session_category", "day_id", "start_time")
	for _, t := range times {
		insertBuilder = insertBuilder.Values(category, dayID, t)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDaySlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDaySlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateCustomSlot добавляет разовый слот для конкретной даты
func (r *Repository) CreateCustomSlot(ctx context.Context, slot *domain.CustomSlot) (*domain.CustomSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("custom_slots").
		Columns("session_category", "slot_date", "start_time").
		Values(slot.SessionCategory, slot.Date, slot.StartTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCustomSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCustomSlot - execute insert: %v", ErrExecQuery, err)
	}
	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// GetCustomSlotsByDate получает разовые слоты на дату для категории
func (r *Repository) GetCustomSlotsByDate(ctx context.Context, category string, date string) ([]*domain.CustomSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "session_category", "slot_date", "start_time", "created_at").
		From("custom_slots").
		Where(squirrel.Eq{"session_category": category, "slot_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomSlotsByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomSlotsByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCustomSlots(rows)
}

// GetCustomSlotsByDateRange получает разовые слоты всех категорий за период
func (r *Repository) GetCustomSlotsByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.CustomSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "session_category", "slot_date", "start_time", "created_at").
		From("custom_slots").
		Where(squirrel.GtOrEq{"slot_date": startDate}).
		Where(squirrel.LtOrEq{"slot_date": endDate}).
		OrderBy("slot_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomSlotsByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomSlotsByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCustomSlots(rows)
}

// DeleteCustomSlot удаляет разовый слот
func (r *Repository) DeleteCustomSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("custom_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCustomSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCustomSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCustomSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *Repository) scanCustomSlots(rows *sql.Rows) ([]*domain.CustomSlot, error) {
	slots := make([]*domain.CustomSlot, 0)

	for rows.Next() {
		var slot domain.CustomSlot
		var createdAt sql.NullTime
		if err := rows.Scan(&slot.ID, &slot.SessionCategory, &slot.Date, &slot.StartTime, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanCustomSlots - scan row: %v", ErrScanRow, err)
		}
		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCustomSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
