package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterPayPeriodRoutes registers the routes for pay periods with
// the RouterGroup that is passed.
func RegisterPayPeriodRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPayPeriodList)
		r.GET("", GetPayPeriods)
		r.POST("", CreatePayPeriod)
	}

	// Bulk generation and date lookup
	{
		r.OPTIONS("/generate", httputil.OptionsPost)
		r.POST("/generate", GeneratePayPeriods)
		r.OPTIONS("/for-date", httputil.OptionsGet)
		r.GET("/for-date", GetPayPeriodForDate)
	}

	// Pay period with ID
	{
		r.OPTIONS("/:id", OptionsPayPeriodDetail)
		r.GET("/:id", GetPayPeriod)
		r.PATCH("/:id", UpdatePayPeriod)
		r.DELETE("/:id", DeletePayPeriod)
	}
}

func OptionsPayPeriodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsPayPeriodDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.PayPeriod{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreatePayPeriod creates a single pay period.
func CreatePayPeriod(c *gin.Context) {
	var editable PayPeriodEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &e,
		})
		return
	}

	period := editable.model()

	err = models.DB.Create(&period).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &e,
		})
		return
	}

	data := newPayPeriod(c, period)
	c.JSON(http.StatusCreated, PayPeriodResponse{Data: &data})
}

// GeneratePayPeriods creates a run of consecutive pay periods. Periods
// whose start date already exists are skipped, only the newly created
// periods are returned.
func GeneratePayPeriods(c *gin.Context) {
	var editable PayPeriodGenerateEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayPeriodListResponse{
			Error: &e,
		})
		return
	}

	if editable.StartDate.IsZero() {
		e := errPeriodStartNotSet.Error()
		c.JSON(http.StatusBadRequest, PayPeriodListResponse{
			Error: &e,
		})
		return
	}

	periods, err := models.GeneratePeriods(models.DB, editable.StartDate, editable.Count, editable.IntervalDays)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayPeriodListResponse{
			Error: &e,
		})
		return
	}

	data := make([]PayPeriod, 0)
	for _, period := range periods {
		data = append(data, newPayPeriod(c, period))
	}

	c.JSON(http.StatusCreated, PayPeriodListResponse{Data: data})
}

// GetPayPeriodForDate returns the pay period containing the date
// passed in the date query parameter.
func GetPayPeriodForDate(c *gin.Context) {
	var query struct {
		Date types.Date `form:"date" binding:"required"`
	}

	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, PayPeriodResponse{
			Error: &s,
		})
		return
	}

	period, err := models.PeriodForDate(models.DB, query.Date)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	data := newPayPeriod(c, period)
	c.JSON(http.StatusOK, PayPeriodResponse{Data: &data})
}

// GetPayPeriods returns a list of pay periods, ordered by start date.
func GetPayPeriods(c *gin.Context) {
	var filter PayPeriodQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("start_date ASC")

	if slices.Contains(setFields, "FromDate") {
		q = q.Where("start_date >= ?", filter.FromDate)
	}

	if slices.Contains(setFields, "UntilDate") {
		q = q.Where("start_date <= ?", filter.UntilDate)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 pay periods and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var periods []models.PayPeriod
	err := q.Find(&periods).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayPeriodListResponse{
			Error: &e,
		})
		return
	}

	data := make([]PayPeriod, 0)
	for _, period := range periods {
		data = append(data, newPayPeriod(c, period))
	}

	c.JSON(http.StatusOK, PayPeriodListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetPayPeriod returns a specific pay period.
func GetPayPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	var period models.PayPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	data := newPayPeriod(c, period)
	c.JSON(http.StatusOK, PayPeriodResponse{Data: &data})
}

// UpdatePayPeriod updates an existing pay period. Only values to be
// updated need to be specified.
func UpdatePayPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	var period models.PayPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PayPeriodEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	var data PayPeriodEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&period).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayPeriodResponse{
			Error: &s,
		})
		return
	}

	r := newPayPeriod(c, period)
	c.JSON(http.StatusOK, PayPeriodResponse{Data: &r})
}

// DeletePayPeriod deletes a pay period together with its planned
// amounts.
func DeletePayPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var period models.PayPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
