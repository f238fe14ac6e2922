// Package complete_booking завершение ручного бронирования клиентом
// по одноразовой ссылке: контакты, ответы анкеты, перевод в confirmed
package complete_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	questionnaireRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/questionnaire"
	tokenRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/token"
)

// UseCase use case завершения бронирования по токену
type UseCase struct {
	bookingRepo       BookingRepository
	tokenRepo         TokenRepository
	questionnaireRepo QuestionnaireRepository
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	questionnaireRepo QuestionnaireRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:       bookingRepo,
		tokenRepo:         tokenRepo,
		questionnaireRepo: questionnaireRepo,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// GetForm возвращает бронирование и анкету категории для формы завершения
func (uc *UseCase) GetForm(ctx context.Context, req *FormRequest) (*FormResponse, error) {
	// 1. Ищем токен
	t, err := uc.tokenRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		uc.logger.Error("CompleteBooking: failed to get token: %v", err)
		return nil, fmt.Errorf("%w: failed to get token: %v", ErrInternal, err)
	}

	// 2. Просроченный токен эквивалентен несуществующему для клиента
	if t.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("CompleteBooking: token for booking id=%d expired", t.BookingID)
		return nil, ErrTokenExpired
	}

	// 3. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, t.BookingID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", t.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Загружаем анкету категории (отсутствие анкеты не ошибка)
	fields := []domain.QuestionnaireField{}
	q, err := uc.questionnaireRepo.GetBySessionCategory(ctx, booking.SessionCategory)
	if err != nil && !errors.Is(err, questionnaireRepo.ErrQuestionnaireNotFound) {
		uc.logger.Error("CompleteBooking: failed to get questionnaire: %v", err)
		return nil, fmt.Errorf("%w: failed to get questionnaire: %v", ErrInternal, err)
	}
	if q != nil {
		fields = q.Fields
	}

	return &FormResponse{
		BookingID:       booking.ID,
		ClientName:      booking.ClientName,
		SessionCategory: booking.SessionCategory,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		Fields:          fields,
	}, nil
}

// Execute завершает бронирование по токену
// Повторный запрос погашенным токеном без изменений идемпотентен:
// возвращается текущее состояние бронирования
func (uc *UseCase) Execute(ctx context.Context, req *CompleteRequest) (*CompleteResponse, error) {
	uc.logger.Info("CompleteBooking: completing via token")

	// 1. Ищем токен
	t, err := uc.tokenRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		uc.logger.Error("CompleteBooking: failed to get token: %v", err)
		return nil, fmt.Errorf("%w: failed to get token: %v", ErrInternal, err)
	}

	if t.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("CompleteBooking: token for booking id=%d expired", t.BookingID)
		return nil, ErrTokenExpired
	}

	// 2. Погашенный токен: возвращаем текущее состояние, если запрос
	// ничего не меняет, иначе отказываем
	if t.IsUsed() {
		booking, err := uc.bookingRepo.GetByID(ctx, t.BookingID)
		if err != nil {
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", t.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if isNoOpRetry(booking, t, req) {
			uc.logger.Info("CompleteBooking: idempotent retry for booking id=%d", booking.ID)
			return toResponse(booking), nil
		}
		uc.logger.Warn("CompleteBooking: attempt to mutate booking id=%d via used token", t.BookingID)
		return nil, ErrTokenAlreadyUsed
	}

	// 3. Загружаем бронирование и анкету
	booking, err := uc.bookingRepo.GetByID(ctx, t.BookingID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", t.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if err := uc.validateAnswers(ctx, booking.SessionCategory, req.Answers); err != nil {
		uc.logger.Warn("CompleteBooking: answers validation failed for booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	rawAnswers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal answers: %v", ErrInternal, err)
	}

	// 4. Гасим токен и подтверждаем бронирование атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. MarkUsed проигрывает только конкурентному завершению
		if err := uc.tokenRepo.MarkUsed(txCtx, req.Token, rawAnswers); err != nil {
			if errors.Is(err, tokenRepo.ErrTokenAlreadyUsed) {
				return ErrTokenAlreadyUsed
			}
			uc.logger.Error("CompleteBooking: failed to mark token used: %v", err)
			return fmt.Errorf("%w: failed to mark token used: %v", ErrInternal, err)
		}

		// 4.2. Заполняем контакты и подтверждаем
		if req.ClientEmail != nil {
			booking.ClientEmail = req.ClientEmail
		}
		if req.ClientPhone != nil {
			booking.ClientPhone = req.ClientPhone
		}
		if req.Notes != nil {
			booking.Notes = req.Notes
		}
		if booking.CanBeCompleted() {
			booking.Status = domain.StatusConfirmed
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CompleteBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteBooking: booking id=%d confirmed", booking.ID)

	return toResponse(booking), nil
}

// validateAnswers проверяет ответы против анкеты категории
// Лишние ключи, не описанные в анкете, отклоняются
func (uc *UseCase) validateAnswers(ctx context.Context, category string, answers map[string][]string) error {
	q, err := uc.questionnaireRepo.GetBySessionCategory(ctx, category)
	if err != nil {
		if errors.Is(err, questionnaireRepo.ErrQuestionnaireNotFound) {
			if len(answers) > 0 {
				return fmt.Errorf("%w: no questionnaire configured for category %q", ErrInvalidAnswers, category)
			}
			return nil
		}
		return fmt.Errorf("%w: failed to get questionnaire: %v", ErrInternal, err)
	}

	known := make(map[string]bool, len(q.Fields))
	for i := range q.Fields {
		field := &q.Fields[i]
		known[field.Key] = true
		if err := field.ValidateAnswer(answers[field.Key]); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
		}
	}
	for key := range answers {
		if !known[key] {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidAnswers, key)
		}
	}
	return nil
}

// isNoOpRetry проверяет, что повторный запрос не пытается ничего изменить
// Ответы сравниваются с сохранёнными при гашении токена: точное повторение
// той же формы идемпотентно
func isNoOpRetry(booking *domain.Booking, t *domain.BookingToken, req *CompleteRequest) bool {
	if len(req.Answers) > 0 {
		raw, err := json.Marshal(req.Answers)
		if err != nil || !bytes.Equal(raw, t.Answers) {
			return false
		}
	}
	if req.ClientEmail != nil && !equalPtr(req.ClientEmail, booking.ClientEmail) {
		return false
	}
	if req.ClientPhone != nil && !equalPtr(req.ClientPhone, booking.ClientPhone) {
		return false
	}
	if req.Notes != nil && !equalPtr(req.Notes, booking.Notes) {
		return false
	}
	return true
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func toResponse(b *domain.Booking) *CompleteResponse {
	return &CompleteResponse{
		BookingID:       b.ID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		SessionCategory: b.SessionCategory,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Notes:           b.Notes,
	}
}
