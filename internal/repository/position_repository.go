package repository

import (
	"context"

	"github.com/orgchart-planner/internal/domain"
	"gorm.io/gorm"
)

// PositionRepository определяет интерфейс для работы с позициями
type PositionRepository interface {
	Create(ctx context.Context, pos *domain.Position) error
	GetByID(ctx context.Context, id string) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	Update(ctx context.Context, pos *domain.Position) error
	SaveAll(ctx context.Context, positions []domain.Position) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	ReassignManager(ctx context.Context, fromManagerID string, toManagerID *string) error
	ReplaceAll(ctx context.Context, positions []domain.Position) error
}

type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository создаёт новый экземпляр репозитория
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, pos *domain.Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	var pos domain.Position
	err := r.db.WithContext(ctx).First(&pos, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &pos, nil
}

func (r *positionRepository) List(ctx context.Context) ([]domain.Position, error) {
	var positions []domain.Position
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&positions).Error
	return positions, err
}

func (r *positionRepository) Update(ctx context.Context, pos *domain.Position) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *positionRepository) SaveAll(ctx context.Context, positions []domain.Position) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range positions {
			if err := tx.Save(&positions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Position{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

func (r *positionRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Position{}).Error
}

func (r *positionRepository) ReassignManager(ctx context.Context, fromManagerID string, toManagerID *string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Position{}).
		Where("manager_id = ?", fromManagerID).
		Update("manager_id", toManagerID).Error
}

func (r *positionRepository) ReplaceAll(ctx context.Context, positions []domain.Position) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Position{}).Error; err != nil {
			return err
		}
		for i := range positions {
			if err := tx.Create(&positions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
