// Package bookings операторские операции над бронированиями: списки,
// изменение, перенос на другой слот, смена статуса и удаление
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/internal/infra/storage/booking"
	"github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
	"github.com/silwerlining/SLP-BookingService/internal/service/bookings/models"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// allowedTransitions допустимые переходы статуса бронирования
// Завершённые и отменённые бронирования менять нельзя
var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:     {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:   {domain.StatusCompleted, domain.StatusCancelled, domain.StatusRescheduled},
	domain.StatusRescheduled: {domain.StatusConfirmed, domain.StatusCancelled},
}

// Service сервис операторских операций над бронированиями
type Service struct {
	bookingRepo          BookingRepository
	resolver             AvailabilityResolver
	calendarClient       CalendarClient
	calendarSettingsRepo CalendarSettingsRepository
	txManager            TransactionManager
	logger               Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	calendarClient CalendarClient,
	calendarSettingsRepo CalendarSettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:          bookingRepo,
		resolver:             resolver,
		calendarClient:       calendarClient,
		calendarSettingsRepo: calendarSettingsRepo,
		txManager:            txManager,
		logger:               logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(b), nil
}

// List получает бронирования с гибкой фильтрацией
// По умолчанию отменённые не включаются; IncludeInactive возвращает и их
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, category=%v, includeInactive=%v",
		req.Status, req.SessionCategory, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update изменяет бронирование. Смена даты или времени - это перенос:
// целевой слот проверяется атомарно тем же расчётом доступности, что и
// создание бронирования, занятость самого переносимого бронирования
// при проверке не учитывается
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d, reschedule=%v", id, req.IsReschedule())

	var startTime types.TimeString
	if req.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			s.logger.Warn("Update: invalid start time %q for booking id=%d", *req.StartTime, id)
			return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}
		startTime = parsed
	}

	var updated *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if req.IsReschedule() {
			if !b.CanBeRescheduled() {
				return ErrCannotReschedule
			}

			newDate := b.BookingDate
			if req.BookingDate != nil {
				newDate = *req.BookingDate
			}
			newStart := b.StartTime
			if req.StartTime != nil {
				newStart = startTime
			}

			if err := s.checkSlotAvailable(txCtx, b.ID, b.SessionCategory, newDate, newStart); err != nil {
				return err
			}

			b.BookingDate = newDate
			b.StartTime = newStart
			// Выгруженное событие устарело: сбрасываем UID, чтобы
			// следующая синхронизация создала событие на новом месте
			b.CalendarEventUID = nil
		}

		applyUpdate(b, req)

		if err := s.bookingRepo.Update(txCtx, b); err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = b
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrSlotNotAvailable) ||
			errors.Is(err, ErrCannotReschedule) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: booking id=%d: %v", id, err)
			return nil, err
		}
		s.logger.Error("Update: booking id=%d: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(updated), nil
}

// UpdateStatus меняет статус бронирования с проверкой допустимости перехода
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !transitionAllowed(b.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			b.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, newStatus)
	return nil
}

// Delete удаляет бронирование. Если бронирование было выгружено во внешний
// календарь, зеркальное событие удаляется тоже; недоступность внешнего
// сервера удаление не блокирует
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if b.CalendarEventUID != nil {
		s.deleteCalendarEvent(ctx, id, *b.CalendarEventUID)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// checkSlotAvailable проверяет, что целевой слот переноса свободен
func (s *Service) checkSlotAvailable(ctx context.Context, bookingID int64, category string, date time.Time, start types.TimeString) error {
	day, err := s.resolver.ExecuteDay(ctx, &resolveAvailability.DayRequest{
		Date:             date,
		SessionCategory:  ptr.Ptr(category),
		ExcludeBookingID: ptr.Ptr(bookingID),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	for _, slot := range day.Slots {
		if slot.StartTime == start {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, date.Format(domain.DateFormat), start)
}

// applyUpdate переносит изменяемые поля запроса в бронирование
func applyUpdate(b *domain.Booking, req *models.UpdateBookingRequest) {
	if req.ClientName != nil {
		b.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		b.ClientEmail = req.ClientEmail
	}
	if req.ClientPhone != nil {
		b.ClientPhone = req.ClientPhone
	}
	if req.PackageName != nil {
		b.PackageName = req.PackageName
	}
	if req.PackagePrice != nil {
		b.TotalPrice = req.PackagePrice
	}
	if req.Notes != nil {
		b.Notes = req.Notes
	}
}

// deleteCalendarEvent удаляет зеркальное событие бронирования, best-effort
func (s *Service) deleteCalendarEvent(ctx context.Context, bookingID int64, uid string) {
	settings, err := s.calendarSettingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, calendarsettings.ErrSettingsNotFound) {
			s.logger.Warn("Delete: failed to get calendar settings for booking id=%d: %v", bookingID, err)
		}
		return
	}
	if !settings.IsConfigured() {
		return
	}

	creds := caldav.Credentials{
		BaseURL:  settings.CalDAVURL,
		Username: settings.Username,
		Password: settings.Password,
	}

	calendars, err := s.calendarClient.ListCalendars(ctx, creds)
	if err != nil {
		s.logger.Warn("Delete: failed to list calendars for booking id=%d: %v", bookingID, err)
		return
	}

	for _, cal := range calendars {
		if cal.Name != settings.BookingCalendarName {
			continue
		}
		if err := s.calendarClient.DeleteEvent(ctx, creds, cal.Href, uid); err != nil {
			s.logger.Warn("Delete: failed to delete calendar event for booking id=%d: %v", bookingID, err)
		}
		return
	}

	s.logger.Warn("Delete: booking calendar %q not found, event %s left on server",
		settings.BookingCalendarName, uid)
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
