package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/models"
	pc_uuid "github.com/paycycle/backend/internal/uuid"
)

// CategoryRuleEditable represents all user configurable parameters
type CategoryRuleEditable struct {
	Pattern    string    `json:"pattern" example:"whole foods"` // Matched case-insensitively as a substring of the description
	CategoryID uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Archived   bool      `json:"archived" example:"false" default:"false"`
}

func (editable CategoryRuleEditable) model() models.CategoryRule {
	return models.CategoryRule{
		Pattern:    editable.Pattern,
		CategoryID: editable.CategoryID,
		Archived:   editable.Archived,
	}
}

type CategoryRuleLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/category-rules/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category rule itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The category the rule assigns
}

type CategoryRule struct {
	models.DefaultModel
	CategoryRuleEditable
	Links CategoryRuleLinks `json:"links"`
}

func newCategoryRule(c *gin.Context, model models.CategoryRule) CategoryRule {
	url := c.GetString(string(models.DBContextURL))

	return CategoryRule{
		DefaultModel: model.DefaultModel,
		CategoryRuleEditable: CategoryRuleEditable{
			Pattern:    model.Pattern,
			CategoryID: model.CategoryID,
			Archived:   model.Archived,
		},
		Links: CategoryRuleLinks{
			Self:     fmt.Sprintf("%s/v1/category-rules/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type CategoryRuleListResponse struct {
	Data       []CategoryRule `json:"data"`                                                          // List of category rules
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type CategoryRuleResponse struct {
	Data  *CategoryRule `json:"data"`                                                          // Data for the category rule
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryRuleQueryFilter struct {
	CategoryID pc_uuid.UUID `form:"category"`                   // By ID of the category the rule assigns
	Archived   bool         `form:"archived"`                   // Is the rule archived?
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first category rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of category rules to return. Defaults to 50.
}

func (f CategoryRuleQueryFilter) model() models.CategoryRule {
	return models.CategoryRule{
		CategoryID: f.CategoryID.UUID,
		Archived:   f.Archived,
	}
}
