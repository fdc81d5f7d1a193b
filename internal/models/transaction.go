package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an actual bank transaction. Amounts are signed, a
// negative amount is an outflow.
//
// Transactions are never deleted. They persist independently of the
// category lifecycle so that archived categories keep their history.
type Transaction struct {
	DefaultModel
	Date             types.Date      `json:"date" example:"2024-01-03"`
	Description      string          `json:"description" example:"Rent Payment"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)" example:"-1200.00"`
	CategoryID       *uuid.UUID      `json:"categoryId"`
	Category         Category        `json:"-"`
	Categorized      bool            `json:"categorized" example:"true"`
	MatchedPlannedID *uuid.UUID      `json:"matchedPlannedId"` // The planned amount this transaction was reconciled against
	MatchedPlanned   *PlannedAmount  `json:"-" gorm:"foreignKey:MatchedPlannedID"`
	Note             string          `json:"note" example:"January rent"`
	ImportHash       string          `json:"-" gorm:"index"` // SHA256 over (date, description, amount) for import duplicate detection
}

// BeforeSave normalizes the transaction: strings are trimmed, amounts
// are stored with two decimal places and the categorized flag follows
// the category reference.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Note = strings.TrimSpace(t.Note)
	t.Amount = t.Amount.Round(2)

	// Normalize a pointer to the nil UUID to no category
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	t.Categorized = t.CategoryID != nil

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, toSave.CategoryID)
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("CategoryID") {
		return t.checkIntegrity(tx, toSave.CategoryID)
	}

	return nil
}

// checkIntegrity verifies that a referenced category exists and is not
// a parent-only grouping node.
func (t *Transaction) checkIntegrity(tx *gorm.DB, categoryID *uuid.UUID) error {
	if categoryID == nil || *categoryID == uuid.Nil {
		return nil
	}

	var category Category
	err := tx.First(&category, *categoryID).Error
	if err != nil {
		return err
	}

	if category.ParentOnly {
		return ErrCategoryIsParentOnly
	}

	return nil
}

// Categorize assigns the category to the transaction.
//
// With autoMatch set, the transaction is also reconciled: within the
// pay period containing the transaction date, the first uncleared
// planned amount for the category is linked to the transaction and
// marked cleared. No planned amount is matched when the date falls
// outside every period or the period holds no open planned amount for
// the category.
func (t *Transaction) Categorize(db *gorm.DB, categoryID uuid.UUID, autoMatch bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := t.checkIntegrity(tx, &categoryID)
		if err != nil {
			return err
		}

		t.CategoryID = &categoryID
		t.Categorized = true

		if autoMatch {
			err = t.matchPlannedAmount(tx, categoryID)
			if err != nil {
				return err
			}
		}

		return tx.Model(t).
			Select("CategoryID", "Categorized", "MatchedPlannedID").
			Updates(map[string]any{
				"category_id":        t.CategoryID,
				"categorized":        t.Categorized,
				"matched_planned_id": t.MatchedPlannedID,
			}).Error
	})
}

// matchPlannedAmount links the transaction to the first open planned
// amount for the category in the period containing the transaction
// date. Among multiple candidates, storage order decides.
func (t *Transaction) matchPlannedAmount(tx *gorm.DB, categoryID uuid.UUID) error {
	period, err := PeriodForDate(tx, t.Date)
	if errors.Is(err, ErrResourceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var planned PlannedAmount
	err = tx.
		Where("category_id = ? AND pay_period_id = ? AND cleared = ?", categoryID, period.ID, false).
		First(&planned).Error
	if errors.Is(err, ErrResourceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = tx.Model(&planned).Select("Cleared").Updates(map[string]any{"cleared": true}).Error
	if err != nil {
		return err
	}

	t.MatchedPlannedID = &planned.ID
	return nil
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
