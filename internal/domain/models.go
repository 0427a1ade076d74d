package domain

import (
	"time"
)

// RoleType определяет тип позиции: приносит ли она выручку
type RoleType string

const (
	RoleTypeBillable    RoleType = "billable"
	RoleTypeNonBillable RoleType = "nonBillable"
)

// Valid проверяет, что тип позиции является одним из допустимых значений
func (rt RoleType) Valid() bool {
	return rt == RoleTypeBillable || rt == RoleTypeNonBillable
}

// Position представляет позицию (роль) в оргструктуре с финансовыми атрибутами.
// Производные поля пересчитываются через ApplyFinancials и никогда не
// изменяются напрямую.
type Position struct {
	ID        string   `json:"id" gorm:"type:varchar(36);primaryKey"`
	Role      string   `json:"role" gorm:"type:varchar(200);not null"`
	ManagerID *string  `json:"manager_id" gorm:"type:varchar(36);index"`
	RoleType  RoleType `json:"role_type" gorm:"type:varchar(20);not null;default:billable"`

	// Входные финансовые поля
	Salary      float64 `json:"salary" gorm:"not null;default:0"`
	Rate        float64 `json:"rate" gorm:"not null;default:0"`
	Utilization float64 `json:"utilization" gorm:"not null;default:0"`

	// Производные поля (функция от входных полей и глобальных настроек)
	TotalSalary  float64 `json:"total_salary" gorm:"not null;default:0"`
	OverheadCost float64 `json:"overhead_cost" gorm:"not null;default:0"`
	TotalCost    float64 `json:"total_cost" gorm:"not null;default:0"`
	Revenue      float64 `json:"revenue" gorm:"not null;default:0"`
	Profit       float64 `json:"profit" gorm:"not null;default:0"`
	Margin       float64 `json:"margin" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Manager *Position `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (Position) TableName() string {
	return "positions"
}

// Settings - глобальные настройки, влияющие на производные поля всех позиций.
// Хранятся единственной строкой с id = 1.
type Settings struct {
	ID              int64   `json:"-" gorm:"primaryKey"`
	BenefitsPercent float64 `json:"benefits_percent" gorm:"not null;default:30"`
	OverheadPercent float64 `json:"overhead_percent" gorm:"not null;default:20"`
	WorkWeekHours   float64 `json:"work_week_hours" gorm:"not null;default:40"`
}

// TableName задаёт имя таблицы для GORM
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		ID:              1,
		BenefitsPercent: 30,
		OverheadPercent: 20,
		WorkWeekHours:   40,
	}
}

// TreeNode - узел иерархического представления оргструктуры.
// Производное представление для отображения, не хранится.
type TreeNode struct {
	Position
	Depth    int        `json:"depth"`
	Children []TreeNode `json:"children"`
}
