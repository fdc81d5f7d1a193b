package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/internal/types"
	pc_uuid "github.com/paycycle/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// PlannedAmountEditable represents all user configurable parameters
type PlannedAmountEditable struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	PayPeriodID uuid.UUID       `json:"payPeriodId" example:"b3a8b8d4-77ad-4cbd-b0d8-cfe4adf78e31"`
	Amount      decimal.Decimal `json:"amount" example:"1200.00"`
	Cleared     bool            `json:"cleared" example:"false" default:"false"`
	DueDate     *types.Date     `json:"dueDate"`
}

func (editable PlannedAmountEditable) model() models.PlannedAmount {
	return models.PlannedAmount{
		CategoryID:  editable.CategoryID,
		PayPeriodID: editable.PayPeriodID,
		Amount:      editable.Amount,
		Cleared:     editable.Cleared,
		DueDate:     editable.DueDate,
	}
}

type PlannedAmountLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/planned-amounts/3b1ea324-d438-4419-882a-2fc91d71772f"`      // The planned amount itself
	Category  string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // The category the amount is planned for
	PayPeriod string `json:"payPeriod" example:"https://example.com/api/v1/pay-periods/b3a8b8d4-77ad-4cbd-b0d8-cfe4adf78e31"`    // The pay period the amount is planned in
}

type PlannedAmount struct {
	models.DefaultModel
	PlannedAmountEditable
	Links PlannedAmountLinks `json:"links"`
}

func newPlannedAmount(c *gin.Context, model models.PlannedAmount) PlannedAmount {
	url := c.GetString(string(models.DBContextURL))

	return PlannedAmount{
		DefaultModel: model.DefaultModel,
		PlannedAmountEditable: PlannedAmountEditable{
			CategoryID:  model.CategoryID,
			PayPeriodID: model.PayPeriodID,
			Amount:      model.Amount,
			Cleared:     model.Cleared,
			DueDate:     model.DueDate,
		},
		Links: PlannedAmountLinks{
			Self:      fmt.Sprintf("%s/v1/planned-amounts/%s", url, model.ID),
			Category:  fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			PayPeriod: fmt.Sprintf("%s/v1/pay-periods/%s", url, model.PayPeriodID),
		},
	}
}

type PlannedAmountListResponse struct {
	Data       []PlannedAmount `json:"data"`                                                          // List of planned amounts
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type PlannedAmountResponse struct {
	Data  *PlannedAmount `json:"data"`                                                          // Data for the planned amount
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PlannedAmountQueryFilter struct {
	CategoryID  pc_uuid.UUID `form:"category"`                   // By ID of the category
	PayPeriodID pc_uuid.UUID `form:"period"`                     // By ID of the pay period
	Cleared     bool         `form:"cleared"`                    // Has the amount been reconciled?
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first planned amount returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of planned amounts to return. Defaults to 50.
}

func (f PlannedAmountQueryFilter) model() models.PlannedAmount {
	return models.PlannedAmount{
		CategoryID:  f.CategoryID.UUID,
		PayPeriodID: f.PayPeriodID.UUID,
		Cleared:     f.Cleared,
	}
}

// PlannedAmountDueDateEditable is the body for setting or clearing the
// due date of a planned amount.
type PlannedAmountDueDateEditable struct {
	DueDate *types.Date `json:"dueDate"` // null clears the due date
}

// RecurringPlanEditable is the body for creating due-day based planned
// amounts across all pay periods.
type RecurringPlanEditable struct {
	CategoryID uuid.UUID                `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Amount     decimal.Decimal          `json:"amount" example:"50.00"`
	DueDay     int                      `json:"dueDay" example:"15"`          // Day the expense is due, interpreted by the frequency
	Frequency  models.TemplateFrequency `json:"frequency" example:"monthly"` // "monthly" or "every_period"
}

// RecurringPlanResponse reports how many planned amounts were created.
type RecurringPlanResponse struct {
	Created int     `json:"created" example:"12"` // Number of planned amounts created
	Error   *string `json:"error"`                // The error, if any occurred
}
