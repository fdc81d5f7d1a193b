package models

import (
	"encoding/json"

	"github.com/paycycle/backend/internal/types"
	"gorm.io/gorm"
)

// PayPeriod is a contiguous date range used as the planning unit for
// budgets, usually two weeks between paychecks.
//
// Start dates are unique, but periods are not checked for overlap or
// contiguity. Callers that generate periods with GeneratePeriods get
// non-overlapping ranges; hand-created periods are the caller's
// responsibility.
type PayPeriod struct {
	DefaultModel
	StartDate types.Date `json:"startDate" gorm:"uniqueIndex" example:"2024-01-01"`
	EndDate   types.Date `json:"endDate" example:"2024-01-14"`
}

func (p *PayPeriod) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.EndDate.Before(p.StartDate) {
		return ErrPeriodEndsBeforeStart
	}

	return nil
}

func (p *PayPeriod) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(PayPeriod)
	if !ok {
		return nil
	}

	// Overlay the changed dates on the stored state so that partial
	// updates are validated against the values that end up in the row
	start := p.StartDate
	if tx.Statement.Changed("StartDate") {
		start = toSave.StartDate
	}

	end := p.EndDate
	if tx.Statement.Changed("EndDate") {
		end = toSave.EndDate
	}

	if end.Before(start) {
		return ErrPeriodEndsBeforeStart
	}

	return nil
}

// BeforeDelete removes the planned amounts of the period. Deleting a
// period always cascades into its planning data.
func (p *PayPeriod) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("pay_period_id = ?", p.ID).Delete(&PlannedAmount{}).Error
}

// Contains reports whether the date falls into the period.
func (p PayPeriod) Contains(date types.Date) bool {
	return date.InRange(p.StartDate, p.EndDate)
}

// GeneratePeriods creates count consecutive pay periods of intervalDays
// days each, starting at start. Periods whose start date is already
// taken are skipped instead of duplicated. Only the newly created
// periods are returned.
func GeneratePeriods(db *gorm.DB, start types.Date, count int, intervalDays int) ([]PayPeriod, error) {
	if count < 1 {
		return nil, ErrPeriodCountNotPositive
	}

	if intervalDays < 1 {
		intervalDays = 14
	}

	created := make([]PayPeriod, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			periodStart := start.AddDays(i * intervalDays)

			var existing int64
			err := tx.Model(&PayPeriod{}).Where("start_date = ?", periodStart).Count(&existing).Error
			if err != nil {
				return err
			}

			if existing > 0 {
				continue
			}

			period := PayPeriod{
				StartDate: periodStart,
				EndDate:   periodStart.AddDays(intervalDays - 1),
			}

			err = tx.Create(&period).Error
			if err != nil {
				return err
			}

			created = append(created, period)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// PeriodForDate returns the pay period whose range contains the date.
func PeriodForDate(db *gorm.DB, date types.Date) (PayPeriod, error) {
	var period PayPeriod

	err := db.
		Where("start_date <= ?", date).
		Where("end_date >= ?", date).
		Order("start_date ASC").
		First(&period).Error
	if err != nil {
		return PayPeriod{}, err
	}

	return period, nil
}

// Returns all pay periods on this instance for export
func (PayPeriod) Export() (json.RawMessage, error) {
	var periods []PayPeriod
	err := DB.Unscoped().Where(&PayPeriod{}).Find(&periods).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&periods)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
