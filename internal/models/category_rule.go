package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// CategoryRule assigns categories to imported transactions whose
// description contains the pattern, compared case-insensitively.
// Patterns may additionally contain the * wildcard.
type CategoryRule struct {
	DefaultModel
	Pattern    string    `json:"pattern" example:"whole foods"`
	CategoryID uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Category   Category  `json:"-"`
	Archived   bool      `json:"archived" example:"false"`
}

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Pattern = strings.TrimSpace(r.Pattern)
	return nil
}

func (r *CategoryRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CategoryRule)
	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (r *CategoryRule) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(CategoryRule)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("CategoryID") {
		return tx.First(&Category{}, toSave.CategoryID).Error
	}

	return nil
}

// Matches reports whether the rule applies to the description.
func (r CategoryRule) Matches(description string) bool {
	return glob.Glob("*"+strings.ToLower(r.Pattern)+"*", strings.ToLower(description))
}

// ActiveRules returns all active rules in storage order. The first
// matching rule wins during auto-categorization, so the order rules
// were created in is their priority.
func ActiveRules(db *gorm.DB) ([]CategoryRule, error) {
	var rules []CategoryRule

	err := db.Where("archived = ?", false).Order("created_at ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// Returns all category rules on this instance for export
func (CategoryRule) Export() (json.RawMessage, error) {
	var rules []CategoryRule
	err := DB.Unscoped().Where(&CategoryRule{}).Find(&rules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&rules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
