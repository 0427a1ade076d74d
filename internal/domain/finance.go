package domain

import "math"

// BillableWeeksPerYear - принятое число оплачиваемых недель в году
const BillableWeeksPerYear = 44.0

// Financials - производные финансовые показатели позиции
type Financials struct {
	TotalSalary  float64
	OverheadCost float64
	TotalCost    float64
	Revenue      float64
	Profit       float64
	Margin       float64
}

// SanitizeAmount приводит некорректное числовое значение к нулю.
// NaN, бесконечности и отрицательные значения считаются некорректным вводом.
func SanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// AnnualBillableHours возвращает годовое число оплачиваемых часов
func AnnualBillableHours(workWeekHours float64) float64 {
	return workWeekHours * BillableWeeksPerYear
}

// CalcFinancials вычисляет производные показатели позиции.
// Тотальная функция: на любых входных значениях возвращает результат,
// входные значения должны быть заранее очищены через SanitizeAmount.
func CalcFinancials(salary, rate, utilization float64, roleType RoleType, s Settings) Financials {
	benefitsMultiplier := 1 + s.BenefitsPercent/100
	overheadMultiplier := s.OverheadPercent / 100

	totalSalary := salary * benefitsMultiplier
	overheadCost := totalSalary * overheadMultiplier
	totalCost := totalSalary + overheadCost

	var revenue float64
	if roleType == RoleTypeBillable {
		revenue = rate * (utilization / 100) * AnnualBillableHours(s.WorkWeekHours)
	}

	profit := revenue - totalCost

	var margin float64
	switch {
	case revenue > 0:
		margin = profit / revenue * 100
	case totalCost > 0:
		margin = -100
	}

	return Financials{
		TotalSalary:  totalSalary,
		OverheadCost: overheadCost,
		TotalCost:    totalCost,
		Revenue:      revenue,
		Profit:       profit,
		Margin:       margin,
	}
}

// ApplyFinancials - единственный путь пересчёта производных полей позиции.
// Очищает входные поля, обнуляет rate и utilization для неоплачиваемых
// позиций и записывает пересчитанные показатели.
func (p *Position) ApplyFinancials(s Settings) {
	p.Salary = SanitizeAmount(p.Salary)
	p.Rate = SanitizeAmount(p.Rate)
	p.Utilization = SanitizeAmount(p.Utilization)

	if p.RoleType != RoleTypeBillable {
		p.RoleType = RoleTypeNonBillable
		p.Rate = 0
		p.Utilization = 0
	}

	f := CalcFinancials(p.Salary, p.Rate, p.Utilization, p.RoleType, s)
	p.TotalSalary = f.TotalSalary
	p.OverheadCost = f.OverheadCost
	p.TotalCost = f.TotalCost
	p.Revenue = f.Revenue
	p.Profit = f.Profit
	p.Margin = f.Margin
}
