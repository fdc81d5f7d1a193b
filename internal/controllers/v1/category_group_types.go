package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/models"
)

// CategoryGroupEditable represents all user configurable parameters
type CategoryGroupEditable struct {
	Name      string              `json:"name" example:"Housing" default:""`
	Type      models.CategoryType `json:"type" example:"expense" default:"expense"`
	SortOrder int                 `json:"sortOrder" example:"1" default:"0"`
}

func (editable CategoryGroupEditable) model() models.CategoryGroup {
	return models.CategoryGroup{
		Name:      editable.Name,
		Type:      editable.Type,
		SortOrder: editable.SortOrder,
	}
}

type CategoryGroupLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/category-groups/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category group itself
	Categories string `json:"categories" example:"https://example.com/api/v1/categories?group=3b1ea324-d438-4419-882a-2fc91d71772f"`  // Categories in this group
}

type CategoryGroup struct {
	models.DefaultModel
	CategoryGroupEditable
	Links CategoryGroupLinks `json:"links"`
}

func newCategoryGroup(c *gin.Context, model models.CategoryGroup) CategoryGroup {
	url := c.GetString(string(models.DBContextURL))

	return CategoryGroup{
		DefaultModel: model.DefaultModel,
		CategoryGroupEditable: CategoryGroupEditable{
			Name:      model.Name,
			Type:      model.Type,
			SortOrder: model.SortOrder,
		},
		Links: CategoryGroupLinks{
			Self:       fmt.Sprintf("%s/v1/category-groups/%s", url, model.ID),
			Categories: fmt.Sprintf("%s/v1/categories?group=%s", url, model.ID),
		},
	}
}

type CategoryGroupListResponse struct {
	Data       []CategoryGroup `json:"data"`                                                          // List of category groups
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type CategoryGroupResponse struct {
	Data  *CategoryGroup `json:"data"`                                                          // Data for the category group
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryGroupQueryFilter struct {
	Name      string `form:"name" filterField:"false"`   // By name
	Type      string `form:"type"`                       // By type
	SortOrder int    `form:"sortOrder"`                  // By sort order
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first category group returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of category groups to return. Defaults to 50.
}

func (f CategoryGroupQueryFilter) model() models.CategoryGroup {
	return models.CategoryGroup{
		Type:      models.CategoryType(f.Type),
		SortOrder: f.SortOrder,
	}
}
