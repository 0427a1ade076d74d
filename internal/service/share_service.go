package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/repository"
)

// cSuitePattern распознаёт руководящие роли по префиксу названия.
// Такие роли при импорте считаются неоплачиваемыми.
var cSuitePattern = regexp.MustCompile(`(?i)^(ceo|coo|cfo|cto|cmo|chief)`)

// ShareService определяет интерфейс кодирования и импорта ссылок обмена
type ShareService interface {
	Encode(ctx context.Context) (*dto.ShareResponse, error)
	Import(ctx context.Context, data string) ([]domain.Position, error)
}

type shareService struct {
	posRepo      repository.PositionRepository
	settingsRepo repository.SettingsRepository
}

// NewShareService создаёт новый экземпляр сервиса
func NewShareService(posRepo repository.PositionRepository, settingsRepo repository.SettingsRepository) ShareService {
	return &shareService{
		posRepo:      posRepo,
		settingsRepo: settingsRepo,
	}
}

// Encode упаковывает текущий список позиций в base64(JSON)
func (s *shareService) Encode(ctx context.Context) (*dto.ShareResponse, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(positions)
	if err != nil {
		return nil, err
	}

	return &dto.ShareResponse{
		Data: base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// Import декодирует ссылку обмена и замещает текущую коллекцию позиций.
// Импортированным данным нельзя доверять: каждая позиция проходит
// нормализацию, производные поля пересчитываются с текущими настройками.
func (s *shareService) Import(ctx context.Context, data string) ([]domain.Position, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(strings.TrimSpace(data))
		if err != nil {
			return nil, domain.ErrInvalidShareData
		}
	}

	var positions []domain.Position
	if err := json.Unmarshal(raw, &positions); err != nil {
		return nil, domain.ErrInvalidShareData
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	normalizeImported(positions, *settings)

	if err := s.posRepo.ReplaceAll(ctx, positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func normalizeImported(positions []domain.Position, settings domain.Settings) {
	ids := make(map[string]bool, len(positions))
	base := time.Now()

	for i := range positions {
		p := &positions[i]

		p.Role = strings.TrimSpace(p.Role)
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if !p.RoleType.Valid() {
			p.RoleType = inferRoleType(p.Role)
		}
		// Явные отметки времени сохраняют исходный порядок списка
		p.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)

		ids[p.ID] = true
	}

	// Висячие ссылки и самоссылки очищаются: позиция становится корневой
	for i := range positions {
		p := &positions[i]
		if p.ManagerID != nil && (*p.ManagerID == p.ID || !ids[*p.ManagerID]) {
			p.ManagerID = nil
		}
	}

	breakCycles(positions)

	for i := range positions {
		positions[i].ApplyFinancials(settings)
	}
}

// inferRoleType определяет тип роли по её названию
func inferRoleType(role string) domain.RoleType {
	if cSuitePattern.MatchString(role) {
		return domain.RoleTypeNonBillable
	}
	return domain.RoleTypeBillable
}

// breakCycles разрывает циклы ссылок на руководителя. Для каждой позиции
// выполняется подъём по цепочке; если цепочка возвращается к исходной
// позиции, её ссылка на руководителя очищается.
func breakCycles(positions []domain.Position) {
	index := make(map[string]*domain.Position, len(positions))
	for i := range positions {
		index[positions[i].ID] = &positions[i]
	}

	for i := range positions {
		start := &positions[i]
		seen := map[string]bool{start.ID: true}

		current := start.ManagerID
		for current != nil {
			if *current == start.ID {
				start.ManagerID = nil
				break
			}
			if seen[*current] {
				break
			}
			seen[*current] = true

			next, ok := index[*current]
			if !ok {
				break
			}
			current = next.ManagerID
		}
	}
}
