package service_test

import (
	"context"
	"testing"

	"github.com/orgchart-planner/internal/dto"
	"github.com/orgchart-planner/internal/service"
)

func TestUpdateSettings_RecomputesAllPositions(t *testing.T) {
	posRepo := newMockPositionRepo()
	settingsRepo := newMockSettingsRepo()
	posSvc := service.NewPositionService(posRepo, settingsRepo)
	settingsSvc := service.NewSettingsService(settingsRepo, posRepo)

	pos := createPosition(t, posSvc, dto.CreatePositionRequest{
		Role:        "Consultant",
		RoleType:    "billable",
		Salary:      90000,
		Rate:        175,
		Utilization: 80,
	})

	_, err := settingsSvc.Update(context.Background(), &dto.UpdateSettingsRequest{
		BenefitsPercent: 30,
		OverheadPercent: 15,
		WorkWeekHours:   35,
	})
	if err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := posSvc.GetByID(context.Background(), pos.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	// Входные поля не тронуты, производные пересчитаны под новые настройки
	if got.Salary != 90000 || got.Rate != 175 || got.Utilization != 80 {
		t.Errorf("input fields changed: %+v", got)
	}
	if got.TotalSalary != 117000 {
		t.Errorf("expected total salary 117000, got %v", got.TotalSalary)
	}
	if got.OverheadCost != 17550 {
		t.Errorf("expected overhead cost 17550, got %v", got.OverheadCost)
	}
	if got.Revenue != 215600 {
		t.Errorf("expected revenue 215600, got %v", got.Revenue)
	}
}

func TestUpdateSettings_Idempotent(t *testing.T) {
	posRepo := newMockPositionRepo()
	settingsRepo := newMockSettingsRepo()
	posSvc := service.NewPositionService(posRepo, settingsRepo)
	settingsSvc := service.NewSettingsService(settingsRepo, posRepo)

	pos := createPosition(t, posSvc, dto.CreatePositionRequest{
		Role: "Consultant", RoleType: "billable", Salary: 90000, Rate: 175, Utilization: 80,
	})

	req := dto.UpdateSettingsRequest{BenefitsPercent: 28, OverheadPercent: 12, WorkWeekHours: 37.5}

	if _, err := settingsSvc.Update(context.Background(), &req); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	first, _ := posSvc.GetByID(context.Background(), pos.ID)

	if _, err := settingsSvc.Update(context.Background(), &req); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	second, _ := posSvc.GetByID(context.Background(), pos.ID)

	if first.TotalSalary != second.TotalSalary ||
		first.OverheadCost != second.OverheadCost ||
		first.TotalCost != second.TotalCost ||
		first.Revenue != second.Revenue ||
		first.Profit != second.Profit ||
		first.Margin != second.Margin {
		t.Errorf("repeated recompute with equal settings diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestUpdateSettings_SanitizesNegativeValues(t *testing.T) {
	settingsRepo := newMockSettingsRepo()
	settingsSvc := service.NewSettingsService(settingsRepo, newMockPositionRepo())

	settings, err := settingsSvc.Update(context.Background(), &dto.UpdateSettingsRequest{
		BenefitsPercent: -10,
		OverheadPercent: 15,
		WorkWeekHours:   40,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if settings.BenefitsPercent != 0 {
		t.Errorf("expected negative benefits percent coerced to 0, got %v", settings.BenefitsPercent)
	}
}
