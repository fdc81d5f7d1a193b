package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/models"
	pc_uuid "github.com/paycycle/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTemplateEditable represents all user configurable parameters
type RecurringTemplateEditable struct {
	Name       string                   `json:"name" example:"Electricity" default:""`
	CategoryID uuid.UUID                `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Amount     decimal.Decimal          `json:"amount" example:"50.00"`
	Frequency  models.TemplateFrequency `json:"frequency" example:"every_period"`
	Archived   bool                     `json:"archived" example:"false" default:"false"`
}

func (editable RecurringTemplateEditable) model() models.RecurringTemplate {
	return models.RecurringTemplate{
		Name:       editable.Name,
		CategoryID: editable.CategoryID,
		Amount:     editable.Amount,
		Frequency:  editable.Frequency,
		Archived:   editable.Archived,
	}
}

type RecurringTemplateLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/recurring-templates/3b1ea324-d438-4419-882a-2fc91d71772f"` // The template itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // The category the template plans for
}

type RecurringTemplate struct {
	models.DefaultModel
	RecurringTemplateEditable
	Links RecurringTemplateLinks `json:"links"`
}

func newRecurringTemplate(c *gin.Context, model models.RecurringTemplate) RecurringTemplate {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTemplate{
		DefaultModel: model.DefaultModel,
		RecurringTemplateEditable: RecurringTemplateEditable{
			Name:       model.Name,
			CategoryID: model.CategoryID,
			Amount:     model.Amount,
			Frequency:  model.Frequency,
			Archived:   model.Archived,
		},
		Links: RecurringTemplateLinks{
			Self:     fmt.Sprintf("%s/v1/recurring-templates/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type RecurringTemplateListResponse struct {
	Data       []RecurringTemplate `json:"data"`                                                          // List of templates
	Error      *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination         `json:"pagination"`                                                    // Pagination information
}

type RecurringTemplateResponse struct {
	Data  *RecurringTemplate `json:"data"`                                                          // Data for the template
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTemplateQueryFilter struct {
	Name       string       `form:"name" filterField:"false"`   // By name
	CategoryID pc_uuid.UUID `form:"category"`                   // By ID of the category
	Frequency  string       `form:"frequency"`                  // By frequency
	Archived   bool         `form:"archived"`                   // Is the template archived?
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first template returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of templates to return. Defaults to 50.
}

func (f RecurringTemplateQueryFilter) model() models.RecurringTemplate {
	return models.RecurringTemplate{
		CategoryID: f.CategoryID.UUID,
		Frequency:  models.TemplateFrequency(f.Frequency),
		Archived:   f.Archived,
	}
}

// RecurringTemplateApplyEditable is the body for applying a template
// to a set of pay periods.
type RecurringTemplateApplyEditable struct {
	PayPeriodIDs []uuid.UUID `json:"payPeriodIds"` // The pay periods to create planned amounts in
}

// RecurringTemplateApplyResponse reports how many planned amounts an
// apply call created.
type RecurringTemplateApplyResponse struct {
	Applied int     `json:"applied" example:"2"` // Number of planned amounts created
	Error   *string `json:"error"`               // The error, if any occurred
}
