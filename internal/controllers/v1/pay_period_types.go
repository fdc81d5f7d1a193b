package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/internal/types"
)

// PayPeriodEditable represents all user configurable parameters
type PayPeriodEditable struct {
	StartDate types.Date `json:"startDate" example:"2024-01-01"`
	EndDate   types.Date `json:"endDate" example:"2024-01-14"`
}

func (editable PayPeriodEditable) model() models.PayPeriod {
	return models.PayPeriod{
		StartDate: editable.StartDate,
		EndDate:   editable.EndDate,
	}
}

type PayPeriodLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/pay-periods/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The pay period itself
	PlannedAmounts string `json:"plannedAmounts" example:"https://example.com/api/v1/planned-amounts?period=3b1ea324-d438-4419-882a-2fc91d71772f"` // Planned amounts for this period
}

type PayPeriod struct {
	models.DefaultModel
	PayPeriodEditable
	Links PayPeriodLinks `json:"links"`
}

func newPayPeriod(c *gin.Context, model models.PayPeriod) PayPeriod {
	url := c.GetString(string(models.DBContextURL))

	return PayPeriod{
		DefaultModel: model.DefaultModel,
		PayPeriodEditable: PayPeriodEditable{
			StartDate: model.StartDate,
			EndDate:   model.EndDate,
		},
		Links: PayPeriodLinks{
			Self:           fmt.Sprintf("%s/v1/pay-periods/%s", url, model.ID),
			PlannedAmounts: fmt.Sprintf("%s/v1/planned-amounts?period=%s", url, model.ID),
		},
	}
}

type PayPeriodListResponse struct {
	Data       []PayPeriod `json:"data"`                                                          // List of pay periods
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PayPeriodResponse struct {
	Data  *PayPeriod `json:"data"`                                                          // Data for the pay period
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PayPeriodQueryFilter struct {
	FromDate  types.Date `form:"fromDate" filterField:"false"`  // Only periods starting on or after this date
	UntilDate types.Date `form:"untilDate" filterField:"false"` // Only periods starting on or before this date
	Offset    uint       `form:"offset" filterField:"false"`    // The offset of the first pay period returned. Defaults to 0.
	Limit     int        `form:"limit" filterField:"false"`     // Maximum number of pay periods to return. Defaults to 50.
}

// PayPeriodGenerateEditable is the body for bulk-generating pay periods.
type PayPeriodGenerateEditable struct {
	StartDate    types.Date `json:"startDate" example:"2024-01-01"` // Start date of the first period
	Count        int        `json:"count" example:"26"`             // How many periods to generate
	IntervalDays int        `json:"intervalDays" example:"14"`      // Length of each period in days. Defaults to 14.
}
