package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и смены их статуса
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования специалиста
// Опционально фильтрует по периоду (даты включительно) и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings for specialist=%d", req.SpecialistID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.SpecialistID <= 0 {
		return nil, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for specialist=%d", len(bookings), req.SpecialistID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Переходы односторонние: confirmed -> completed | cancelled
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	return s.transition(ctx, "UpdateStatus", bookingID, newStatus)
}

// Complete отмечает бронирование выполненным
func (s *Service) Complete(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d", bookingID)
	return s.transition(ctx, "Complete", bookingID, domain.StatusCompleted)
}

// Cancel отменяет бронирование, освобождая слот
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)
	return s.transition(ctx, "Cancel", bookingID, domain.StatusCancelled)
}

// Вспомогательные методы

func (s *Service) transition(ctx context.Context, op string, bookingID int64, next domain.BookingStatus) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("%s: booking id=%d cannot move from %s to %s", op, bookingID, booking.Status, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, next); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking.Status = next
	s.logger.Info("%s: booking id=%d is now %s", op, bookingID, next)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
