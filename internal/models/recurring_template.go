package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemplateFrequency describes how often a recurring template applies.
type TemplateFrequency string

const (
	FrequencyEveryPeriod TemplateFrequency = "every_period"
	FrequencyMonthly     TemplateFrequency = "monthly"
	FrequencyBiMonthly   TemplateFrequency = "bi_monthly"
)

// Valid reports whether the frequency is one of the known values.
func (f TemplateFrequency) Valid() bool {
	return f == FrequencyEveryPeriod || f == FrequencyMonthly || f == FrequencyBiMonthly
}

// RecurringTemplate is a reusable planned amount, applied on demand to
// a chosen set of pay periods.
type RecurringTemplate struct {
	DefaultModel
	Name       string            `json:"name" example:"Electricity"`
	CategoryID uuid.UUID         `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Category   Category          `json:"-"`
	Amount     decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,2)" example:"50.00"`
	Frequency  TemplateFrequency `json:"frequency" example:"every_period"`
	Archived   bool              `json:"archived" example:"false"`
}

func (t *RecurringTemplate) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Amount = t.Amount.Round(2)
	return nil
}

func (t *RecurringTemplate) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTemplate)
	if !toSave.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (t *RecurringTemplate) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(RecurringTemplate)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Frequency") && !toSave.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if tx.Statement.Changed("CategoryID") {
		return tx.First(&Category{}, toSave.CategoryID).Error
	}

	return nil
}

// Apply creates a planned amount with the template's amount for every
// passed pay period that does not have one for the template's category
// yet. Periods with an existing planned amount are skipped. Returns
// the number of planned amounts created.
func (t RecurringTemplate) Apply(db *gorm.DB, payPeriodIDs []uuid.UUID) (int, error) {
	applied := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, periodID := range payPeriodIDs {
			err := tx.First(&PayPeriod{}, periodID).Error
			if err != nil {
				return err
			}

			var existing int64
			err = tx.Model(&PlannedAmount{}).
				Where("category_id = ? AND pay_period_id = ?", t.CategoryID, periodID).
				Count(&existing).Error
			if err != nil {
				return err
			}

			if existing > 0 {
				continue
			}

			planned := PlannedAmount{
				CategoryID:  t.CategoryID,
				PayPeriodID: periodID,
				Amount:      t.Amount,
			}

			err = tx.Create(&planned).Error
			if err != nil {
				return err
			}

			applied++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return applied, nil
}

// Returns all recurring templates on this instance for export
func (RecurringTemplate) Export() (json.RawMessage, error) {
	var templates []RecurringTemplate
	err := DB.Unscoped().Where(&RecurringTemplate{}).Find(&templates).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&templates)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
