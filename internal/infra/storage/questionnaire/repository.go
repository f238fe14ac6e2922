// Package questionnaire хранение анкет категорий съёмок
// Описания полей хранятся в JSONB-колонке
package questionnaire

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/dbmetrics"
	"github.com/silwerlining/SLP-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// fieldRecord JSONB-представление одного поля анкеты
type fieldRecord struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Required  bool     `json:"required"`
	Options   []string `json:"options,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
}

// Repository репозиторий анкет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория анкет
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySessionCategory получает анкету категории съёмки
func (r *Repository) GetBySessionCategory(ctx context.Context, category string) (*domain.Questionnaire, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "session_category", "fields").
		From("questionnaires").
		Where(squirrel.Eq{"session_category": category}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionCategory - build select query: %v", ErrBuildQuery, err)
	}

	var q domain.Questionnaire
	var rawFields []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&q.ID, &q.SessionCategory, &rawFields)

	if err == sql.ErrNoRows {
		return nil, ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionCategory - scan questionnaire: %v", ErrScanRow, err)
	}

	var records []fieldRecord
	if err := json.Unmarshal(rawFields, &records); err != nil {
		return nil, fmt.Errorf("%w: GetBySessionCategory - unmarshal fields: %v", ErrScanRow, err)
	}

	q.Fields = make([]domain.QuestionnaireField, 0, len(records))
	for _, rec := range records {
		q.Fields = append(q.Fields, domain.QuestionnaireField{
			Key:       rec.Key,
			Label:     rec.Label,
			Kind:      domain.FieldKind(rec.Kind),
			Required:  rec.Required,
			Options:   rec.Options,
			MaxLength: rec.MaxLength,
		})
	}

	return &q, nil
}

// Upsert сохраняет анкету категории съёмки
func (r *Repository) Upsert(ctx context.Context, q *domain.Questionnaire) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	records := make([]fieldRecord, 0, len(q.Fields))
	for _, f := range q.Fields {
		records = append(records, fieldRecord{
			Key:       f.Key,
			Label:     f.Label,
			Kind:      string(f.Kind),
			Required:  f.Required,
			Options:   f.Options,
			MaxLength: f.MaxLength,
		})
	}

	rawFields, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal fields: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("questionnaires").
		Columns("session_category", "fields").
		Values(q.SessionCategory, rawFields).
		Suffix(`ON CONFLICT (session_category) DO UPDATE SET fields = EXCLUDED.fields`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
