// Package token хранение одноразовых токенов завершения ручных бронирований
package token

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

// Repository репозиторий токенов завершения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый токен
func (r *Repository) Create(ctx context.Context, t *domain.BookingToken) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_tokens").
		Columns("token", "booking_id", "expires_at").
		Values(t.Token, t.BookingID, t.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByToken получает токен по значению
func (r *Repository) GetByToken(ctx context.Context, tokenValue string) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("token", "booking_id", "expires_at", "used_at", "answers", "created_at").
		From("booking_tokens").
		Where(squirrel.Eq{"token": tokenValue}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.BookingToken
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.Token,
		&t.BookingID,
		&t.ExpiresAt,
		&t.UsedAt,
		&t.Answers,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan token: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time

	return &t, nil
}

// MarkUsed гасит токен и сохраняет поданные ответы анкеты
// Условие used_at IS NULL гарантирует одноразовость: из двух конкурентных
// запросов только один получит rows affected = 1
func (r *Repository) MarkUsed(ctx context.Context, tokenValue string, answers []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_tokens").
		Set("used_at", squirrel.Expr("NOW()")).
		Set("answers", answers).
		Where(squirrel.Eq{"token": tokenValue}).
		Where("used_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkUsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTokenAlreadyUsed
	}

	return nil
}
