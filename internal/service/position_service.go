package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/repository"
)

// PositionService определяет интерфейс бизнес-логики для позиций
type PositionService interface {
	Create(ctx context.Context, req *dto.CreatePositionRequest) (*domain.Position, error)
	GetByID(ctx context.Context, id string) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	Tree(ctx context.Context) ([]domain.TreeNode, error)
	Update(ctx context.Context, id string, req *dto.UpdatePositionRequest) (*domain.Position, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	BulkOverwrite(ctx context.Context, req *dto.BulkOverwriteRequest) ([]domain.Position, error)
	Export(ctx context.Context) (*dto.ExportResponse, error)
}

type positionService struct {
	posRepo      repository.PositionRepository
	settingsRepo repository.SettingsRepository
}

// NewPositionService создаёт новый экземпляр сервиса
func NewPositionService(posRepo repository.PositionRepository, settingsRepo repository.SettingsRepository) PositionService {
	return &positionService{
		posRepo:      posRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *positionService) Create(ctx context.Context, req *dto.CreatePositionRequest) (*domain.Position, error) {
	managerID, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	pos := &domain.Position{
		ID:          uuid.NewString(),
		Role:        strings.TrimSpace(req.Role),
		ManagerID:   managerID,
		RoleType:    domain.RoleType(req.RoleType),
		Salary:      req.Salary,
		Rate:        req.Rate,
		Utilization: req.Utilization,
	}
	pos.ApplyFinancials(*settings)

	if err := s.posRepo.Create(ctx, pos); err != nil {
		return nil, err
	}

	return pos, nil
}

func (s *positionService) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	return s.posRepo.GetByID(ctx, id)
}

func (s *positionService) List(ctx context.Context) ([]domain.Position, error) {
	return s.posRepo.List(ctx)
}

func (s *positionService) Tree(ctx context.Context) ([]domain.TreeNode, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildForest(positions), nil
}

func (s *positionService) Update(ctx context.Context, id string, req *dto.UpdatePositionRequest) (*domain.Position, error) {
	pos, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		pos.Role = strings.TrimSpace(*req.Role)
	}

	// Смена руководителя: пустая строка переводит позицию в корень
	if req.ManagerID != nil {
		newManagerID := strings.TrimSpace(*req.ManagerID)

		if newManagerID == "" {
			pos.ManagerID = nil
		} else {
			if newManagerID == id {
				return nil, domain.ErrSelfManager
			}

			if _, err := s.posRepo.GetByID(ctx, newManagerID); err != nil {
				if err == domain.ErrPositionNotFound {
					return nil, domain.ErrManagerNotFound
				}
				return nil, err
			}

			// Проверка на цикл: нельзя подчинить позицию её же подчинённому
			cyclic, err := s.wouldCreateCycle(ctx, id, newManagerID)
			if err != nil {
				return nil, err
			}
			if cyclic {
				return nil, domain.ErrCyclicManager
			}

			pos.ManagerID = &newManagerID
		}
	}

	if req.RoleType != nil {
		pos.RoleType = domain.RoleType(*req.RoleType)
	}
	if req.Salary != nil {
		pos.Salary = *req.Salary
	}
	if req.Rate != nil {
		pos.Rate = *req.Rate
	}
	if req.Utilization != nil {
		pos.Utilization = *req.Utilization
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	pos.ApplyFinancials(*settings)

	if err := s.posRepo.Update(ctx, pos); err != nil {
		return nil, err
	}

	return pos, nil
}

func (s *positionService) Delete(ctx context.Context, id string) error {
	pos, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Прямые подчинённые переходят к руководителю удаляемой позиции
	// (или в корень, если его не было)
	if err := s.posRepo.ReassignManager(ctx, id, pos.ManagerID); err != nil {
		return err
	}

	return s.posRepo.Delete(ctx, id)
}

func (s *positionService) DeleteAll(ctx context.Context) error {
	return s.posRepo.DeleteAll(ctx)
}

func (s *positionService) BulkOverwrite(ctx context.Context, req *dto.BulkOverwriteRequest) ([]domain.Position, error) {
	if req.Field != "rate" && req.Field != "utilization" {
		return nil, domain.ErrInvalidBulkField
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	value := domain.SanitizeAmount(req.Value)

	// Затрагиваются только оплачиваемые позиции
	var changed []domain.Position
	for i := range positions {
		if positions[i].RoleType != domain.RoleTypeBillable {
			continue
		}
		if req.Field == "rate" {
			positions[i].Rate = value
		} else {
			positions[i].Utilization = value
		}
		positions[i].ApplyFinancials(*settings)
		changed = append(changed, positions[i])
	}

	if err := s.posRepo.SaveAll(ctx, changed); err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionService) Export(ctx context.Context) (*dto.ExportResponse, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExportResponse{
		Columns: []string{"Role", "Salary", "Total Salary", "Overhead Cost", "Rate", "Utilization", "Revenue", "Profit"},
		Rows:    make([]dto.ExportRow, 0, len(positions)),
	}

	totals := dto.ExportRow{Role: "Totals"}
	for i := range positions {
		p := positions[i]
		rate := p.Rate
		utilization := p.Utilization
		resp.Rows = append(resp.Rows, dto.ExportRow{
			Role:         p.Role,
			Salary:       p.Salary,
			TotalSalary:  p.TotalSalary,
			OverheadCost: p.OverheadCost,
			Rate:         &rate,
			Utilization:  &utilization,
			Revenue:      p.Revenue,
			Profit:       p.Profit,
		})

		totals.Salary += p.Salary
		totals.TotalSalary += p.TotalSalary
		totals.OverheadCost += p.OverheadCost
		totals.Revenue += p.Revenue
		totals.Profit += p.Profit
	}

	// Rate и Utilization в итоговой строке не суммируются
	resp.Totals = totals

	return resp, nil
}

// resolveManager проверяет ссылку на руководителя при создании позиции
func (s *positionService) resolveManager(ctx context.Context, managerID *string) (*string, error) {
	if managerID == nil {
		return nil, nil
	}

	id := strings.TrimSpace(*managerID)
	if id == "" {
		return nil, nil
	}

	if _, err := s.posRepo.GetByID(ctx, id); err != nil {
		if err == domain.ErrPositionNotFound {
			return nil, domain.ErrManagerNotFound
		}
		return nil, err
	}

	return &id, nil
}

// wouldCreateCycle проверяет, приведёт ли назначение newManagerID
// руководителем позиции id к циклу. Подъём по цепочке руководителей
// с защитой от повторного посещения.
func (s *positionService) wouldCreateCycle(ctx context.Context, id, newManagerID string) (bool, error) {
	visited := make(map[string]bool)
	current := newManagerID

	for {
		if current == id {
			return true, nil
		}
		if visited[current] {
			return false, nil
		}
		visited[current] = true

		pos, err := s.posRepo.GetByID(ctx, current)
		if err != nil {
			if err == domain.ErrPositionNotFound {
				return false, nil
			}
			return false, err
		}
		if pos.ManagerID == nil {
			return false, nil
		}
		current = *pos.ManagerID
	}
}
