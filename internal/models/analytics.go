package models

import (
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryComparison is the planned-vs-actual result for one category.
type CategoryComparison struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	CategoryName string          `json:"categoryName" example:"Rent"`
	Planned      decimal.Decimal `json:"planned" example:"1200.00"`
	Actual       decimal.Decimal `json:"actual" example:"-1200.00"`
}

// BudgetComparison sums planned amounts against actual outflows.
type BudgetComparison struct {
	PlannedTotal decimal.Decimal      `json:"plannedTotal" example:"2400.00"` // Sum of all planned amounts across all periods
	ActualTotal  decimal.Decimal      `json:"actualTotal" example:"-2317.34"` // Sum of all negative transaction amounts
	Difference   decimal.Decimal      `json:"difference" example:"4717.34"`   // PlannedTotal minus ActualTotal
	Categories   []CategoryComparison `json:"categories"`                     // Per expense category breakdown
}

// PeriodSpending is the transaction total for one pay period.
type PeriodSpending struct {
	Period types.Date      `json:"period" example:"2024-01-01"` // Start date of the pay period
	Total  decimal.Decimal `json:"total" example:"-133.70"`     // Signed sum of the period's transactions
}

// BudgetVsActual computes the planned-vs-actual comparison.
//
// The totals span all periods and categories. Only outflows (negative
// amounts) count into the actual total. The per-category breakdown
// covers expense categories that have at least one planned amount or
// transaction; sums are accumulated as decimals in application code so
// that no floating point error can creep in.
func BudgetVsActual(db *gorm.DB) (BudgetComparison, error) {
	comparison := BudgetComparison{
		PlannedTotal: decimal.Zero,
		ActualTotal:  decimal.Zero,
		Categories:   make([]CategoryComparison, 0),
	}

	var plannedAmounts []PlannedAmount
	err := db.Find(&plannedAmounts).Error
	if err != nil {
		return BudgetComparison{}, err
	}

	plannedByCategory := make(map[uuid.UUID]decimal.Decimal)
	for _, planned := range plannedAmounts {
		comparison.PlannedTotal = comparison.PlannedTotal.Add(planned.Amount)
		plannedByCategory[planned.CategoryID] = plannedByCategory[planned.CategoryID].Add(planned.Amount)
	}

	var transactions []Transaction
	err = db.Find(&transactions).Error
	if err != nil {
		return BudgetComparison{}, err
	}

	actualByCategory := make(map[uuid.UUID]decimal.Decimal)
	hasTransactions := make(map[uuid.UUID]bool)
	for _, transaction := range transactions {
		if transaction.Amount.IsNegative() {
			comparison.ActualTotal = comparison.ActualTotal.Add(transaction.Amount)
		}

		if transaction.CategoryID == nil {
			continue
		}

		hasTransactions[*transaction.CategoryID] = true
		if transaction.Amount.IsNegative() {
			actualByCategory[*transaction.CategoryID] = actualByCategory[*transaction.CategoryID].Add(transaction.Amount)
		}
	}

	var categories []Category
	err = db.
		Where("type = ?", CategoryTypeExpense).
		Order("sort_order ASC").
		Find(&categories).Error
	if err != nil {
		return BudgetComparison{}, err
	}

	for _, category := range categories {
		planned, hasPlanned := plannedByCategory[category.ID]

		// Categories without any related row are left out entirely
		if !hasPlanned && !hasTransactions[category.ID] {
			continue
		}

		actual, ok := actualByCategory[category.ID]
		if !ok {
			actual = decimal.Zero
		}
		if !hasPlanned {
			planned = decimal.Zero
		}

		comparison.Categories = append(comparison.Categories, CategoryComparison{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Planned:      planned,
			Actual:       actual,
		})
	}

	comparison.Difference = comparison.PlannedTotal.Sub(comparison.ActualTotal)

	return comparison, nil
}

// SpendingTrend computes the signed transaction total per pay period,
// ordered by period start. Periods without a single transaction in
// their date range are left out.
func SpendingTrend(db *gorm.DB) ([]PeriodSpending, error) {
	var periods []PayPeriod
	err := db.Order("start_date ASC").Find(&periods).Error
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	err = db.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	trend := make([]PeriodSpending, 0)
	for _, period := range periods {
		total := decimal.Zero
		matched := false

		for _, transaction := range transactions {
			if period.Contains(transaction.Date) {
				total = total.Add(transaction.Amount)
				matched = true
			}
		}

		if !matched {
			continue
		}

		trend = append(trend, PeriodSpending{
			Period: period.StartDate,
			Total:  total,
		})
	}

	return trend, nil
}
