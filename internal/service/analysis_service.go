package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orgchart-planner/internal/domain"
	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/llm"
	"github.com/orgchart-planner/internal/repository"
)

// AnalysisService определяет интерфейс анализа оргструктуры
type AnalysisService interface {
	Analyze(ctx context.Context) (*dto.AnalysisResponse, error)
}

type analysisService struct {
	posRepo      repository.PositionRepository
	settingsRepo repository.SettingsRepository
	client       llm.Client
}

// NewAnalysisService создаёт новый экземпляр сервиса.
// Нулевой client означает, что анализ не настроен.
func NewAnalysisService(posRepo repository.PositionRepository, settingsRepo repository.SettingsRepository, client llm.Client) AnalysisService {
	return &analysisService{
		posRepo:      posRepo,
		settingsRepo: settingsRepo,
		client:       client,
	}
}

// analysisPosition - позиция в полезной нагрузке анализа.
// Идентификаторы намеренно не передаются модели.
type analysisPosition struct {
	Role          string  `json:"role"`
	RoleType      string  `json:"role_type"`
	Salary        float64 `json:"salary"`
	Rate          float64 `json:"rate"`
	Utilization   float64 `json:"utilization"`
	TotalSalary   float64 `json:"total_salary"`
	OverheadCost  float64 `json:"overhead_cost"`
	TotalCost     float64 `json:"total_cost"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	Margin        float64 `json:"margin"`
	DirectReports int     `json:"direct_reports"`
}

type analysisPayload struct {
	Positions []analysisPosition   `json:"positions"`
	Settings  dto.SettingsResponse `json:"settings"`
}

func (s *analysisService) Analyze(ctx context.Context) (*dto.AnalysisResponse, error) {
	if s.client == nil {
		return nil, domain.ErrAnalysisUnavailable
	}

	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	payload := buildAnalysisPayload(positions, *settings)
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	prompt := buildAnalysisPrompt(string(raw))

	answer, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	var result dto.AnalysisResponse
	if err := json.Unmarshal([]byte(answer), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.RisksOpportunities == nil {
		result.RisksOpportunities = []string{}
	}
	if result.KeyObservations == nil {
		result.KeyObservations = []string{}
	}

	return &result, nil
}

func buildAnalysisPayload(positions []domain.Position, settings domain.Settings) analysisPayload {
	reports := domain.CountDirectReports(positions)

	payload := analysisPayload{
		Positions: make([]analysisPosition, 0, len(positions)),
		Settings: dto.SettingsResponse{
			BenefitsPercent: settings.BenefitsPercent,
			OverheadPercent: settings.OverheadPercent,
			WorkWeekHours:   settings.WorkWeekHours,
		},
	}

	for _, p := range positions {
		payload.Positions = append(payload.Positions, analysisPosition{
			Role:          p.Role,
			RoleType:      string(p.RoleType),
			Salary:        p.Salary,
			Rate:          p.Rate,
			Utilization:   p.Utilization,
			TotalSalary:   p.TotalSalary,
			OverheadCost:  p.OverheadCost,
			TotalCost:     p.TotalCost,
			Revenue:       p.Revenue,
			Profit:        p.Profit,
			Margin:        p.Margin,
			DirectReports: reports[p.ID],
		})
	}

	return payload
}

func buildAnalysisPrompt(payload string) string {
	return `You are an experienced management consultant reviewing the organizational
structure and unit economics of a professional services firm.

Below is the org chart data as JSON. Each position carries its financial
inputs (salary, billable rate, utilization), the derived cost and revenue
figures, and the number of direct reports. Global settings used for the
calculations are included.

` + payload + `

Analyze the structure and economics. Respond with a single JSON object and
nothing else, using exactly this shape:
{
  "strengths": ["..."],
  "risks_opportunities": ["..."],
  "key_observations": ["..."]
}
Each array must contain 2 to 5 short, specific statements grounded in the
numbers provided.`
}
