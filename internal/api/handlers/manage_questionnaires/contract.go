package manage_questionnaires

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetQuestionnaire(ctx context.Context, category string) (*models.QuestionnaireResponse, error)
	UpsertQuestionnaire(ctx context.Context, req *models.UpsertQuestionnaireRequest) (*models.QuestionnaireResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
