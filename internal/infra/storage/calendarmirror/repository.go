// Package calendarmirror локальное зеркало занятых интервалов внешнего календаря
package calendarmirror

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/dbmetrics"
	"github.com/silwerlining/SLP-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий зеркала внешних событий (PK - UID события)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зеркала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceAll заменяет всё содержимое зеркала на переданный набор событий
// Вызывается внутри транзакции синхронизации: при любой ошибке выгрузки
// из внешнего календаря зеркало остаётся нетронутым
func (r *Repository) ReplaceAll(ctx context.Context, events []*domain.ExternalEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("external_events").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	if len(events) == 0 {
		return nil
	}

	// Дубликаты UID устраняются при выгрузке, вставка идёт в пустую таблицу
	insertBuilder := psqlbuilder.Insert("external_events").
		Columns("uid", "summary", "starts_at", "ends_at", "all_day")
	for _, e := range events {
		insertBuilder = insertBuilder.Values(e.UID, e.Summary, e.StartsAt, e.EndsAt, e.AllDay)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetOverlappingRange получает события зеркала, пересекающие период [rangeStart, rangeEnd)
func (r *Repository) GetOverlappingRange(ctx context.Context, rangeStart, rangeEnd string) ([]*domain.ExternalEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("uid", "summary", "starts_at", "ends_at", "all_day").
		From("external_events").
		Where(squirrel.Lt{"starts_at": rangeEnd}).
		Where(squirrel.Gt{"ends_at": rangeStart}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetAll получает все события зеркала
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ExternalEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("uid", "summary", "starts_at", "ends_at", "all_day").
		From("external_events").
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *Repository) scanEvents(rows *sql.Rows) ([]*domain.ExternalEvent, error) {
	events := make([]*domain.ExternalEvent, 0)

	for rows.Next() {
		var e domain.ExternalEvent
		if err := rows.Scan(&e.UID, &e.Summary, &e.StartsAt, &e.EndsAt, &e.AllDay); err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
