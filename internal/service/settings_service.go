package service

import (
	"context"

	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/repository"
)

// SettingsService определяет интерфейс бизнес-логики для глобальных настроек
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*domain.Settings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	posRepo      repository.PositionRepository
}

// NewSettingsService создаёт новый экземпляр сервиса
func NewSettingsService(settingsRepo repository.SettingsRepository, posRepo repository.PositionRepository) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		posRepo:      posRepo,
	}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update заменяет глобальные настройки и пересчитывает производные поля
// всех позиций до возврата ответа. Единственный путь, которым смена
// настроек вступает в силу.
func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*domain.Settings, error) {
	settings := &domain.Settings{
		ID:              1,
		BenefitsPercent: domain.SanitizeAmount(req.BenefitsPercent),
		OverheadPercent: domain.SanitizeAmount(req.OverheadPercent),
		WorkWeekHours:   domain.SanitizeAmount(req.WorkWeekHours),
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range positions {
		positions[i].ApplyFinancials(*settings)
	}

	if err := s.posRepo.SaveAll(ctx, positions); err != nil {
		return nil, err
	}

	return settings, nil
}
