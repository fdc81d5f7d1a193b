package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a single budget category.
//
// Every category belongs to exactly one CategoryGroup, which is the
// authoritative hierarchy. The parent reference is a legacy relation
// from before groups existed. It is kept for backward compatibility
// and validated independently, but new clients should organize
// categories through groups only.
type Category struct {
	DefaultModel
	Name       string        `json:"name" example:"Rent"`
	Type       CategoryType  `json:"type" gorm:"check:valid_category_type,type IN ('expense','income')" example:"expense"`
	GroupID    uuid.UUID     `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Group      CategoryGroup `json:"-"`
	ParentID   *uuid.UUID    `json:"parentId"`
	ParentOnly bool          `json:"parentOnly" example:"false"` // Parent-only categories group other categories and never hold data themselves
	SortOrder  int           `json:"sortOrder" example:"1"`
	Archived   bool          `json:"archived" example:"false"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	// Normalize a pointer to the nil UUID to no parent
	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)

	if !toSave.Type.Valid() {
		return ErrInvalidCategoryType
	}

	return c.checkIntegrity(tx, toSave.Type, toSave.GroupID, toSave.ParentID, toSave.ParentOnly)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Category)
	if !ok {
		return nil
	}

	// Start from the stored state and overlay the fields this
	// update actually changes
	categoryType := c.Type
	if tx.Statement.Changed("Type") {
		categoryType = toSave.Type

		if !categoryType.Valid() {
			return ErrInvalidCategoryType
		}
	}

	groupID := c.GroupID
	if tx.Statement.Changed("GroupID") {
		groupID = toSave.GroupID
	}

	parentID := c.ParentID
	if tx.Statement.Changed("ParentID") {
		parentID = toSave.ParentID
		if parentID != nil && *parentID == uuid.Nil {
			parentID = nil
		}
	}

	parentOnly := c.ParentOnly
	if tx.Statement.Changed("ParentOnly") {
		parentOnly = toSave.ParentOnly
	}

	err := c.checkIntegrity(tx, categoryType, groupID, parentID, parentOnly)
	if err != nil {
		return err
	}

	// A category that has held data can not become a pure grouping node
	if parentOnly && !c.ParentOnly {
		hasData, err := c.hasData(tx)
		if err != nil {
			return err
		}

		if hasData {
			return ErrParentOnlyHasData
		}
	}

	// Archiving requires all subcategories to be archived first
	if tx.Statement.Changed("Archived") && toSave.Archived && !c.Archived {
		var count int64
		err := tx.Model(&Category{}).
			Where("parent_id = ? AND archived = ?", c.ID, false).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrCategoryHasActiveChildren
		}
	}

	return nil
}

// BeforeDelete blocks deletion of categories that are referenced by
// transactions, planned amounts or subcategories. Those categories can
// only be archived so that history stays intact.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	hasData, err := c.hasData(tx)
	if err != nil {
		return err
	}

	if hasData {
		return ErrCategoryHasData
	}

	var count int64
	err = tx.Model(&Category{}).Where("parent_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryHasChildren
	}

	return nil
}

// checkIntegrity verifies the references of the category: the group has
// to exist and share the category type, and a parent has to exist, be
// active, share the type and not close a cycle.
func (c *Category) checkIntegrity(tx *gorm.DB, categoryType CategoryType, groupID uuid.UUID, parentID *uuid.UUID, parentOnly bool) error {
	var group CategoryGroup
	err := tx.First(&group, groupID).Error
	if err != nil {
		return err
	}

	if group.Type != categoryType {
		return ErrCategoryTypeDiffersFromGroup
	}

	if parentID == nil {
		return nil
	}

	if parentOnly {
		return ErrParentOnlyWithParent
	}

	var parent Category
	err = tx.First(&parent, *parentID).Error
	if err != nil {
		return err
	}

	if parent.Archived {
		return ErrParentArchived
	}

	if parent.Type != categoryType {
		return ErrCategoryTypeDiffersFromParent
	}

	return c.checkAncestry(tx, parent)
}

// checkAncestry walks the parent chain upwards from parent. If the
// category itself appears in the chain, setting parent as its parent
// would make the hierarchy cyclic.
//
// The walk is iterative so that arbitrarily deep chains do not exhaust
// the stack.
func (c *Category) checkAncestry(tx *gorm.DB, parent Category) error {
	current := parent
	for {
		if current.ID == c.ID {
			return ErrCategoryCycle
		}

		if current.ParentID == nil {
			return nil
		}

		var next Category
		err := tx.First(&next, *current.ParentID).Error
		if err != nil {
			return err
		}

		current = next
	}
}

// hasData reports whether any transaction or planned amount references
// the category.
func (c *Category) hasData(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return false, err
	}

	if count > 0 {
		return true, nil
	}

	err = tx.Model(&PlannedAmount{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Archive marks the category as archived. The row stays in place so
// that transactions and planned amounts keep their referential history.
// The BeforeUpdate hook blocks archiving while active subcategories
// exist.
func (c *Category) Archive(db *gorm.DB) error {
	return db.Model(c).Select("Archived").Updates(Category{Archived: true}).Error
}

// Reorder swaps the sort order of the category with its adjacent
// sibling in the requested direction. Siblings share the same parent
// and the same type. Reordering past either end of the sibling list is
// a no-op.
func (c *Category) Reorder(db *gorm.DB, direction string) error {
	if direction != "up" && direction != "down" {
		return ErrInvalidDirection
	}

	q := db.Where("type = ?", c.Type)
	if c.ParentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *c.ParentID)
	}

	var siblings []Category
	err := q.Order("sort_order ASC").Find(&siblings).Error
	if err != nil {
		return err
	}

	idx := -1
	for i, sibling := range siblings {
		if sibling.ID == c.ID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return ErrResourceNotFound
	}

	var swapWith Category
	switch {
	case direction == "up" && idx > 0:
		swapWith = siblings[idx-1]
	case direction == "down" && idx < len(siblings)-1:
		swapWith = siblings[idx+1]
	default:
		// Already at an extremity
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		ownOrder := c.SortOrder

		err := tx.Model(c).Select("SortOrder").Updates(map[string]any{"sort_order": swapWith.SortOrder}).Error
		if err != nil {
			return err
		}

		return tx.Model(&swapWith).Select("SortOrder").Updates(map[string]any{"sort_order": ownOrder}).Error
	})
}

// Transactions returns all transactions for the category.
func (c Category) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where("category_id = ?", c.ID).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// PlannedAmounts returns all planned amounts for the category.
func (c Category) PlannedAmounts(db *gorm.DB) ([]PlannedAmount, error) {
	var plannedAmounts []PlannedAmount

	err := db.Where("category_id = ?", c.ID).Find(&plannedAmounts).Error
	if err != nil {
		return nil, err
	}

	return plannedAmounts, nil
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
