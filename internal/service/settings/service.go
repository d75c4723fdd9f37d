package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	settingsCache "github.com/m04kA/SMC-RestaurantBooking/internal/infra/cache/settings"
)

// Service сервис типизированных настроек ресторана
type Service struct {
	repo      SettingsRepository
	cache     Cache
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек; cache может быть nil
func NewService(repo SettingsRepository, cache Cache, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает настройки ресторана.
// Некорректные сохранённые значения заменяются значениями по умолчанию.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (domain.Settings, error) {
	raw, err := s.load(ctx, tenantID)
	if err != nil {
		return domain.Settings{}, err
	}

	settings, issues := domain.ParseSettings(raw)
	for _, issue := range issues {
		s.logger.Warn("GetSettings: tenant=%s key=%s value=%q ignored: %v", tenantID, issue.Key, issue.Value, issue.Err)
	}

	return settings, nil
}

// Update проверяет и сохраняет частичное обновление настроек
func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, patch map[string]string) (domain.Settings, error) {
	s.logger.Info("UpdateSettings: tenant=%s keys=%d", tenantID, len(patch))

	if len(patch) == 0 {
		return domain.Settings{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}

	var updated domain.Settings
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем текущие значения мимо кэша
		raw, err := s.repo.GetAll(txCtx, tenantID)
		if err != nil {
			return fmt.Errorf("%w: failed to read settings: %v", ErrInternal, err)
		}
		current, _ := domain.ParseSettings(raw)

		// 2. Применяем и валидируем патч
		next, err := current.ApplyPatch(patch)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Сохраняем только изменённые ключи в нормализованном виде
		normalized := next.ToMap()
		values := make(map[string]string, len(patch))
		for key := range patch {
			values[key] = normalized[key]
		}

		if err := s.repo.Upsert(txCtx, tenantID, values); err != nil {
			return fmt.Errorf("%w: failed to save settings: %v", ErrInternal, err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpdateSettings: tenant=%s rejected: %v", tenantID, err)
		} else {
			s.logger.Error("UpdateSettings: tenant=%s failed: %v", tenantID, err)
		}
		return domain.Settings{}, err
	}

	// 4. Сбрасываем кэш
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tenantID); err != nil {
			s.logger.Warn("UpdateSettings: tenant=%s cache invalidation failed: %v", tenantID, err)
		}
	}

	s.logger.Info("UpdateSettings: tenant=%s updated", tenantID)
	return updated, nil
}

func (s *Service) load(ctx context.Context, tenantID uuid.UUID) (map[string]string, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, tenantID)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, settingsCache.ErrCacheMiss) {
			s.logger.Warn("GetSettings: tenant=%s cache read failed: %v", tenantID, err)
		}
	}

	raw, err := s.repo.GetAll(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetSettings: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, raw); err != nil {
			s.logger.Warn("GetSettings: tenant=%s cache write failed: %v", tenantID, err)
		}
	}

	return raw, nil
}
