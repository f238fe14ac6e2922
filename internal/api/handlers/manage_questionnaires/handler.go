package manage_questionnaires

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgQuestionnaireNotFound = "анкета для категории не настроена"
	msgInvalidQuestionnaire  = "некорректные данные анкеты"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/admin/questionnaires/{category}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	result, err := h.service.GetQuestionnaire(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrQuestionnaireNotFound):
			h.logger.Warn("GET /admin/questionnaires/%s - Questionnaire not found", category)
			handlers.RespondNotFound(w, msgQuestionnaireNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("GET /admin/questionnaires/%s - Invalid category: %v", category, err)
			handlers.RespondBadRequest(w, msgInvalidQuestionnaire)

		default:
			h.logger.Error("GET /admin/questionnaires/%s - Failed to get questionnaire: %v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/questionnaires/%s - Questionnaire served", category)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsert PUT /api/v1/admin/questionnaires/{category}
// Анкета перезаписывается целиком, категория берётся из пути
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	var req models.UpsertQuestionnaireRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/questionnaires/%s - Invalid request body: %v", category, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SessionCategory = category

	result, err := h.service.UpsertQuestionnaire(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/questionnaires/%s - Invalid questionnaire: %v", category, err)
			handlers.RespondBadRequest(w, msgInvalidQuestionnaire)

		default:
			h.logger.Error("PUT /admin/questionnaires/%s - Failed to save questionnaire: %v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/questionnaires/%s - Questionnaire saved", category)
	handlers.RespondJSON(w, http.StatusOK, result)
}
