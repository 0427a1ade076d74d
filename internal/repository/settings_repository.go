package repository

import (
	"context"

	"github.com/orgchart-planner/internal/domain"
	"gorm.io/gorm"
)

// SettingsRepository определяет интерфейс для работы с глобальными настройками
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository создаёт новый экземпляр репозитория
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	// Единственная строка с id = 1, создаётся с настройками по умолчанию
	settings := domain.DefaultSettings()
	err := r.db.WithContext(ctx).
		Where(domain.Settings{ID: 1}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
