// Package calendarsettings хранение настроек подключения к внешнему календарю
package calendarsettings

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

// Repository репозиторий настроек внешнего календаря (единственная строка, id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки подключения, включая пароль
// Пароль используется только CalDAV-клиентом и никогда не отдаётся в API
func (r *Repository) Get(ctx context.Context) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"caldav_url",
		"username",
		"password",
		"sync_enabled",
		"booking_calendar_name",
		"last_synced_at",
		"updated_at",
	).
		From("calendar_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CalendarSettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.CalDAVURL,
		&s.Username,
		&s.Password,
		&s.SyncEnabled,
		&s.BookingCalendarName,
		&s.LastSyncedAt,
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

// Upsert сохраняет настройки подключения
func (r *Repository) Upsert(ctx context.Context, s *domain.CalendarSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_settings").
		Columns("id", "caldav_url", "username", "password", "sync_enabled", "booking_calendar_name").
		Values(1, s.CalDAVURL, s.Username, s.Password, s.SyncEnabled, s.BookingCalendarName).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			caldav_url = EXCLUDED.caldav_url,
			username = EXCLUDED.username,
			password = EXCLUDED.password,
			sync_enabled = EXCLUDED.sync_enabled,
			booking_calendar_name = EXCLUDED.booking_calendar_name,
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

// TouchLastSyncedAt фиксирует момент успешной синхронизации
func (r *Repository) TouchLastSyncedAt(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendar_settings").
		Set("last_synced_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TouchLastSyncedAt - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TouchLastSyncedAt - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TouchLastSyncedAt - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
