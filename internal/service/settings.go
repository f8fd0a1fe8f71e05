package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settingsRepo.Get(ctx, key)
}

func (s *settingsService) SetSetting(ctx context.Context, key, value string) (*domain.Setting, error) {
	setting := &domain.Setting{Key: key, Value: value}
	if err := s.settingsRepo.Set(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingsRepo.List(ctx)
}
