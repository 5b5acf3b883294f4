package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	preferencesRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/preferences"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
)

// Service сервис настроек планирования и рабочих часов специалиста
type Service struct {
	prefsRepo      PreferencesRepository
	specialistRepo SpecialistRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	prefsRepo PreferencesRepository,
	specialistRepo SpecialistRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		prefsRepo:      prefsRepo,
		specialistRepo: specialistRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Get получает настройки специалиста
// Если настройки не сохранены, возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context, specialistID int64) (*models.PreferencesResponse, error) {
	s.logger.Info("Get: fetching preferences for specialist=%d", specialistID)

	if err := s.checkSpecialist(ctx, "Get", specialistID); err != nil {
		return nil, err
	}

	prefs, isDefault, err := s.load(ctx, specialistID)
	if err != nil {
		s.logger.Error("Get: repository error for specialist=%d: %v", specialistID, err)
		return nil, err
	}

	return models.FromDomainPreferences(prefs, isDefault), nil
}

// Update обновляет настройки специалиста (создает при отсутствии)
func (s *Service) Update(ctx context.Context, specialistID int64, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error) {
	s.logger.Info("Update: updating preferences for specialist=%d", specialistID)

	if err := s.checkSpecialist(ctx, "Update", specialistID); err != nil {
		return nil, err
	}

	var saved *domain.SchedulingPreferences
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Текущие настройки (или значения по умолчанию)
		prefs, _, err := s.load(ctx, specialistID)
		if err != nil {
			return err
		}

		// 2. Применяем изменения и валидируем
		if err := applyPreferences(prefs, req); err != nil {
			s.logger.Warn("Update: validation failed for specialist=%d: %v", specialistID, err)
			return err
		}

		// 3. Сохраняем
		saved, err = s.prefsRepo.UpsertPreferences(ctx, prefs)
		if err != nil {
			return fmt.Errorf("%w: Update - upsert preferences: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			s.logger.Error("Update: failed for specialist=%d: %v", specialistID, err)
		}
		return nil, err
	}

	s.logger.Info("Update: saved preferences for specialist=%d", specialistID)
	return models.FromDomainPreferences(saved, false), nil
}

// ListWorkingHours получает активный набор рабочих часов
func (s *Service) ListWorkingHours(ctx context.Context, specialistID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("ListWorkingHours: specialist=%d", specialistID)

	if err := s.checkSpecialist(ctx, "ListWorkingHours", specialistID); err != nil {
		return nil, err
	}

	hours, err := s.prefsRepo.ListWorkingHours(ctx, specialistID)
	if err != nil {
		s.logger.Error("ListWorkingHours: repository error for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: ListWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(specialistID, hours), nil
}

// ReplaceWorkingHours заменяет набор рабочих часов целиком
func (s *Service) ReplaceWorkingHours(ctx context.Context, specialistID int64, req *models.ReplaceWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("ReplaceWorkingHours: specialist=%d, days=%d", specialistID, len(req.Days))

	hours, err := toDomainWorkingHours(specialistID, req)
	if err != nil {
		s.logger.Warn("ReplaceWorkingHours: validation failed for specialist=%d: %v", specialistID, err)
		return nil, err
	}

	if err := s.checkSpecialist(ctx, "ReplaceWorkingHours", specialistID); err != nil {
		return nil, err
	}

	var saved []*domain.WorkingHours
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.prefsRepo.ReplaceWorkingHours(ctx, specialistID, hours)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWorkingHours: repository error for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWorkingHours: stored %d rows for specialist=%d", len(saved), specialistID)
	return models.FromDomainWorkingHours(specialistID, saved), nil
}

// Вспомогательные методы

// load возвращает сохраненные настройки или значения по умолчанию (isDefault = true)
func (s *Service) load(ctx context.Context, specialistID int64) (*domain.SchedulingPreferences, bool, error) {
	prefs, err := s.prefsRepo.GetPreferences(ctx, specialistID)
	if err == nil {
		return prefs, false, nil
	}
	if errors.Is(err, preferencesRepo.ErrPreferencesNotFound) {
		return domain.DefaultPreferences(specialistID), true, nil
	}
	return nil, false, fmt.Errorf("%w: load preferences: %v", ErrInternal, err)
}

func (s *Service) checkSpecialist(ctx context.Context, op string, specialistID int64) error {
	if specialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}
	if _, err := s.specialistRepo.GetSpecialist(ctx, specialistID); err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialistNotFound) {
			s.logger.Warn("%s: specialist id=%d not found", op, specialistID)
			return ErrSpecialistNotFound
		}
		s.logger.Error("%s: failed to get specialist id=%d: %v", op, specialistID, err)
		return fmt.Errorf("%w: %s - get specialist: %v", ErrInternal, op, err)
	}
	return nil
}
