package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
)

// RegisterAnalyticsRoutes registers the routes for analytics with the
// RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/budget-vs-actual", httputil.OptionsGet)
	r.GET("/budget-vs-actual", GetBudgetVsActual)
	r.OPTIONS("/spending-trend", httputil.OptionsGet)
	r.GET("/spending-trend", GetSpendingTrend)
}

// BudgetVsActualResponse is the response for the planned-vs-actual
// comparison.
type BudgetVsActualResponse struct {
	Data  *models.BudgetComparison `json:"data"`  // The comparison
	Error *string                  `json:"error"` // The error, if any occurred
}

// SpendingTrendResponse is the response for the per-period spending
// trend.
type SpendingTrendResponse struct {
	Data  []models.PeriodSpending `json:"data"`  // Totals per pay period, ordered by period start
	Error *string                 `json:"error"` // The error, if any occurred
}

// GetBudgetVsActual returns the planned-vs-actual comparison across
// all pay periods, with a per-category breakdown for expense
// categories.
func GetBudgetVsActual(c *gin.Context) {
	comparison, err := models.BudgetVsActual(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetVsActualResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetVsActualResponse{Data: &comparison})
}

// GetSpendingTrend returns the signed transaction total per pay
// period. Periods without transactions are left out.
func GetSpendingTrend(c *gin.Context) {
	trend, err := models.SpendingTrend(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingTrendResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SpendingTrendResponse{Data: trend})
}
