package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
)

// RegisterRootRoutes registers the v1 root routes with the RouterGroup
// that is passed.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Analytics          string `json:"analytics" example:"https://example.com/api/v1/analytics"`                    // URL of the analytics endpoints
	Categories         string `json:"categories" example:"https://example.com/api/v1/categories"`                  // URL of the category collection endpoint
	CategoryGroups     string `json:"categoryGroups" example:"https://example.com/api/v1/category-groups"`         // URL of the category group collection endpoint
	CategoryRules      string `json:"categoryRules" example:"https://example.com/api/v1/category-rules"`           // URL of the category rule collection endpoint
	Export             string `json:"export" example:"https://example.com/api/v1/export"`                          // URL of the export endpoint
	Import             string `json:"import" example:"https://example.com/api/v1/import"`                          // URL of the import endpoint
	PayPeriods         string `json:"payPeriods" example:"https://example.com/api/v1/pay-periods"`                 // URL of the pay period collection endpoint
	PlannedAmounts     string `json:"plannedAmounts" example:"https://example.com/api/v1/planned-amounts"`         // URL of the planned amount collection endpoint
	RecurringTemplates string `json:"recurringTemplates" example:"https://example.com/api/v1/recurring-templates"` // URL of the recurring template collection endpoint
	Transactions       string `json:"transactions" example:"https://example.com/api/v1/transactions"`              // URL of the transaction collection endpoint
}

// Get returns the link list for v1.
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Analytics:          url + "/v1/analytics",
			Categories:         url + "/v1/categories",
			CategoryGroups:     url + "/v1/category-groups",
			CategoryRules:      url + "/v1/category-rules",
			Export:             url + "/v1/export",
			Import:             url + "/v1/import",
			PayPeriods:         url + "/v1/pay-periods",
			PlannedAmounts:     url + "/v1/planned-amounts",
			RecurringTemplates: url + "/v1/recurring-templates",
			Transactions:       url + "/v1/transactions",
		},
	})
}

// Options returns the allowed HTTP methods.
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
