package dto

import (
	"time"
)

// CreatePositionRequest - запрос на создание позиции
type CreatePositionRequest struct {
	Role        string  `json:"role" validate:"required,min=1,max=200"`
	ManagerID   *string `json:"manager_id" validate:"omitempty,min=1,max=36"`
	RoleType    string  `json:"role_type" validate:"required,oneof=billable nonBillable"`
	Salary      float64 `json:"salary"`
	Rate        float64 `json:"rate"`
	Utilization float64 `json:"utilization"`
}

// UpdatePositionRequest - запрос на частичное обновление позиции.
// Не переданные поля сохраняют текущие значения. Пустая строка в manager_id
// переводит позицию в корень.
type UpdatePositionRequest struct {
	Role        *string  `json:"role" validate:"omitempty,min=1,max=200"`
	ManagerID   *string  `json:"manager_id" validate:"omitempty,max=36"`
	RoleType    *string  `json:"role_type" validate:"omitempty,oneof=billable nonBillable"`
	Salary      *float64 `json:"salary"`
	Rate        *float64 `json:"rate"`
	Utilization *float64 `json:"utilization"`
}

// BulkOverwriteRequest - запрос на массовую перезапись поля
// для всех оплачиваемых позиций
type BulkOverwriteRequest struct {
	Field string  `json:"field" validate:"required,oneof=rate utilization"`
	Value float64 `json:"value"`
}

// UpdateSettingsRequest - запрос на замену глобальных настроек
type UpdateSettingsRequest struct {
	BenefitsPercent float64 `json:"benefits_percent" validate:"min=0"`
	OverheadPercent float64 `json:"overhead_percent" validate:"min=0"`
	WorkWeekHours   float64 `json:"work_week_hours" validate:"min=0,max=168"`
}

// PositionResponse - ответ с данными позиции
type PositionResponse struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	ManagerID    *string   `json:"manager_id"`
	RoleType     string    `json:"role_type"`
	Salary       float64   `json:"salary"`
	Rate         float64   `json:"rate"`
	Utilization  float64   `json:"utilization"`
	TotalSalary  float64   `json:"total_salary"`
	OverheadCost float64   `json:"overhead_cost"`
	TotalCost    float64   `json:"total_cost"`
	Revenue      float64   `json:"revenue"`
	Profit       float64   `json:"profit"`
	Margin       float64   `json:"margin"`
	CreatedAt    time.Time `json:"created_at"`
}

// TreeNodeResponse - ответ с узлом иерархии
type TreeNodeResponse struct {
	PositionResponse
	Depth    int                `json:"depth"`
	Children []TreeNodeResponse `json:"children"`
}

// SettingsResponse - ответ с глобальными настройками
type SettingsResponse struct {
	BenefitsPercent float64 `json:"benefits_percent"`
	OverheadPercent float64 `json:"overhead_percent"`
	WorkWeekHours   float64 `json:"work_week_hours"`
}

// ExportRow - строка экспорта с фиксированным порядком колонок.
// Rate и Utilization указателями: в итоговой строке они пустые.
type ExportRow struct {
	Role         string   `json:"role"`
	Salary       float64  `json:"salary"`
	TotalSalary  float64  `json:"total_salary"`
	OverheadCost float64  `json:"overhead_cost"`
	Rate         *float64 `json:"rate"`
	Utilization  *float64 `json:"utilization"`
	Revenue      float64  `json:"revenue"`
	Profit       float64  `json:"profit"`
}

// ExportResponse - данные для коллаборатора экспорта
type ExportResponse struct {
	Columns []string    `json:"columns"`
	Rows    []ExportRow `json:"rows"`
	Totals  ExportRow   `json:"totals"`
}

// ShareResponse - закодированная ссылка обмена
type ShareResponse struct {
	Data string `json:"data"`
}

// ShareImportRequest - запрос импорта данных из ссылки обмена
type ShareImportRequest struct {
	Data string `json:"data" validate:"required"`
}

// AnalysisResponse - результат анализа оргструктуры
type AnalysisResponse struct {
	Strengths          []string `json:"strengths"`
	RisksOpportunities []string `json:"risks_opportunities"`
	KeyObservations    []string `json:"key_observations"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
