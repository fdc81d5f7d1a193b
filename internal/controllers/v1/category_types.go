package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/models"
	pc_uuid "github.com/paycycle/backend/internal/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name       string              `json:"name" example:"Rent" default:""`
	Type       models.CategoryType `json:"type" example:"expense" default:"expense"`
	GroupID    uuid.UUID           `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ParentID   *uuid.UUID          `json:"parentId"`                   // Legacy parent reference, the group is authoritative
	ParentOnly bool                `json:"parentOnly" default:"false"` // Parent-only categories group others and never hold data
	SortOrder  int                 `json:"sortOrder" example:"1" default:"0"`
	Archived   bool                `json:"archived" example:"true" default:"false"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:       editable.Name,
		Type:       editable.Type,
		GroupID:    editable.GroupID,
		ParentID:   editable.ParentID,
		ParentOnly: editable.ParentOnly,
		SortOrder:  editable.SortOrder,
		Archived:   editable.Archived,
	}
}

type CategoryLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                   // The category itself
	Group          string `json:"group" example:"https://example.com/api/v1/category-groups/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`             // The group the category belongs to
	Transactions   string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"`    // Transactions for this category
	PlannedAmounts string `json:"plannedAmounts" example:"https://example.com/api/v1/planned-amounts?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Planned amounts for this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:       model.Name,
			Type:       model.Type,
			GroupID:    model.GroupID,
			ParentID:   model.ParentID,
			ParentOnly: model.ParentOnly,
			SortOrder:  model.SortOrder,
			Archived:   model.Archived,
		},
		Links: CategoryLinks{
			Self:           fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Group:          fmt.Sprintf("%s/v1/category-groups/%s", url, model.GroupID),
			Transactions:   fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
			PlannedAmounts: fmt.Sprintf("%s/v1/planned-amounts?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name       string       `form:"name" filterField:"false"`   // By name
	Type       string       `form:"type"`                       // By type
	GroupID    pc_uuid.UUID `form:"group"`                      // By ID of the group
	ParentID   pc_uuid.UUID `form:"parent"`                     // By ID of the parent category
	ParentOnly bool         `form:"parentOnly"`                 // Is the category a grouping node?
	Archived   bool         `form:"archived"`                   // Is the category archived?
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	var parentID *uuid.UUID
	if f.ParentID != pc_uuid.Nil {
		parentID = &f.ParentID.UUID
	}

	return models.Category{
		Type:       models.CategoryType(f.Type),
		GroupID:    f.GroupID.UUID,
		ParentID:   parentID,
		ParentOnly: f.ParentOnly,
		Archived:   f.Archived,
	}
}

// CategoryReorderEditable is the body for reordering a category within
// its siblings.
type CategoryReorderEditable struct {
	Direction string `json:"direction" example:"up"` // "up" or "down"
}
