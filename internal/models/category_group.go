package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// CategoryType distinguishes spending from earning resources.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Valid reports whether the type is one of the two known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// CategoryGroup represents a named group of budget categories.
//
// Group membership is the authoritative hierarchy for categories. The
// parent reference on Category is a legacy relation kept for backward
// compatibility, see the Category documentation.
type CategoryGroup struct {
	DefaultModel
	Name      string       `json:"name" example:"Housing"`
	Type      CategoryType `json:"type" gorm:"check:valid_group_type,type IN ('expense','income')" example:"expense"`
	SortOrder int          `json:"sortOrder" example:"1"`
}

func (g *CategoryGroup) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	return nil
}

func (g *CategoryGroup) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	if !g.Type.Valid() {
		return ErrInvalidCategoryType
	}

	return nil
}

func (g *CategoryGroup) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(CategoryGroup)
	if !ok {
		return nil
	}

	if !tx.Statement.Changed("Type") {
		return nil
	}

	if !toSave.Type.Valid() {
		return ErrInvalidCategoryType
	}

	// The categories of a group always share its type, so the type is
	// frozen as soon as the group holds any
	var count int64
	err := tx.Model(&Category{}).Where("group_id = ?", g.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrGroupTypeHasCategories
	}

	return nil
}

// BeforeDelete blocks deletion while the group still owns categories.
// Deleting a group never cascades, categories have to be reassigned first.
func (g *CategoryGroup) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Category{}).Where("group_id = ?", g.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrGroupHasCategories
	}

	return nil
}

// Categories returns all categories in the group.
func (g CategoryGroup) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category

	err := db.Where(&Category{GroupID: g.ID}).Order("sort_order ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Returns all category groups on this instance for export
func (CategoryGroup) Export() (json.RawMessage, error) {
	var groups []CategoryGroup
	err := DB.Unscoped().Where(&CategoryGroup{}).Find(&groups).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&groups)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
