package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedAmount is the budgeted value for one category within one pay
// period. There is at most one planned amount per category and period.
type PlannedAmount struct {
	DefaultModel
	CategoryID  uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:planned_category_period" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Category    Category        `json:"-"`
	PayPeriodID uuid.UUID       `json:"payPeriodId" gorm:"uniqueIndex:planned_category_period" example:"b3a8b8d4-77ad-4cbd-b0d8-cfe4adf78e31"`
	PayPeriod   PayPeriod       `json:"-"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)" example:"1200.00"`
	Cleared     bool            `json:"cleared" example:"false"` // Set when a transaction has been reconciled against this amount
	DueDate     *types.Date     `json:"dueDate"`
}

// BeforeSave stores amounts with exactly two decimal places.
func (p *PlannedAmount) BeforeSave(_ *gorm.DB) error {
	p.Amount = p.Amount.Round(2)
	return nil
}

func (p *PlannedAmount) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*PlannedAmount)
	return p.checkIntegrity(tx, toSave.CategoryID, toSave.PayPeriodID)
}

func (p *PlannedAmount) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(PlannedAmount)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("CategoryID") || tx.Statement.Changed("PayPeriodID") {
		categoryID := p.CategoryID
		if tx.Statement.Changed("CategoryID") {
			categoryID = toSave.CategoryID
		}

		payPeriodID := p.PayPeriodID
		if tx.Statement.Changed("PayPeriodID") {
			payPeriodID = toSave.PayPeriodID
		}

		return p.checkIntegrity(tx, categoryID, payPeriodID)
	}

	return nil
}

// checkIntegrity verifies that category and pay period exist and that
// the category is allowed to hold data.
func (p *PlannedAmount) checkIntegrity(tx *gorm.DB, categoryID, payPeriodID uuid.UUID) error {
	var category Category
	err := tx.First(&category, categoryID).Error
	if err != nil {
		return err
	}

	if category.ParentOnly {
		return ErrCategoryIsParentOnly
	}

	return tx.First(&PayPeriod{}, payPeriodID).Error
}

// UpsertPlannedAmount creates the planned amount for the category and
// period, or overwrites the amount (and due date, if one is passed) of
// the existing one.
func UpsertPlannedAmount(db *gorm.DB, categoryID, payPeriodID uuid.UUID, amount decimal.Decimal, dueDate *types.Date) (PlannedAmount, error) {
	var planned PlannedAmount

	amount = amount.Round(2)

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("category_id = ? AND pay_period_id = ?", categoryID, payPeriodID).
			First(&planned).Error

		if err == nil {
			update := PlannedAmount{Amount: amount}
			fields := []any{"Amount"}
			if dueDate != nil {
				update.DueDate = dueDate
				fields = append(fields, "DueDate")
			}

			return tx.Model(&planned).Select(fields[0], fields[1:]...).Updates(update).Error
		}

		if !errors.Is(err, ErrResourceNotFound) {
			return err
		}

		planned = PlannedAmount{
			CategoryID:  categoryID,
			PayPeriodID: payPeriodID,
			Amount:      amount,
			DueDate:     dueDate,
		}

		return tx.Create(&planned).Error
	})
	if err != nil {
		return PlannedAmount{}, err
	}

	return planned, nil
}

// SetDueDate sets or clears the due date of the planned amount.
func (p *PlannedAmount) SetDueDate(db *gorm.DB, dueDate *types.Date) error {
	return db.Model(p).Select("DueDate").Updates(map[string]any{"due_date": dueDate}).Error
}

// CreateRecurringPlans creates planned amounts for every existing pay
// period based on a day of the month the expense is due.
//
// For the monthly frequency, the due date is the day within the period
// whose day-of-month equals dueDay; periods that do not contain such a
// day get no planned amount. For the every-period frequency, the due
// date is dueDay days into the period, and periods too short for that
// offset get none. Periods that already have a planned amount for the
// category are skipped. Returns the number of planned amounts created.
func CreateRecurringPlans(db *gorm.DB, categoryID uuid.UUID, amount decimal.Decimal, dueDay int, frequency TemplateFrequency) (int, error) {
	if frequency != FrequencyMonthly && frequency != FrequencyEveryPeriod {
		return 0, ErrInvalidFrequency
	}

	amount = amount.Round(2)
	created := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		var periods []PayPeriod
		err := tx.Order("start_date ASC").Find(&periods).Error
		if err != nil {
			return err
		}

		for _, period := range periods {
			dueDate := recurringDueDate(period, dueDay, frequency)
			if dueDate == nil {
				continue
			}

			var existing int64
			err := tx.Model(&PlannedAmount{}).
				Where("category_id = ? AND pay_period_id = ?", categoryID, period.ID).
				Count(&existing).Error
			if err != nil {
				return err
			}

			if existing > 0 {
				continue
			}

			planned := PlannedAmount{
				CategoryID:  categoryID,
				PayPeriodID: period.ID,
				Amount:      amount,
				DueDate:     dueDate,
			}

			err = tx.Create(&planned).Error
			if err != nil {
				return err
			}

			created++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// recurringDueDate computes the due date for a recurring expense in a
// period, or nil if the expense is not due within the period.
func recurringDueDate(period PayPeriod, dueDay int, frequency TemplateFrequency) *types.Date {
	switch frequency {
	case FrequencyMonthly:
		for date := period.StartDate; !date.After(period.EndDate); date = date.AddDays(1) {
			if date.Day() == dueDay {
				due := date
				return &due
			}
		}

	case FrequencyEveryPeriod:
		due := period.StartDate.AddDays(dueDay - 1)
		if !due.After(period.EndDate) {
			return &due
		}
	}

	return nil
}

// Returns all planned amounts on this instance for export
func (PlannedAmount) Export() (json.RawMessage, error) {
	var plannedAmounts []PlannedAmount
	err := DB.Unscoped().Where(&PlannedAmount{}).Find(&plannedAmounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&plannedAmounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
