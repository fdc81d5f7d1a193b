package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterPlannedAmountRoutes registers the routes for planned amounts
// with the RouterGroup that is passed.
func RegisterPlannedAmountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPlannedAmountList)
		r.GET("", GetPlannedAmounts)
		r.POST("", UpsertPlannedAmount)
	}

	// Recurring plan creation
	{
		r.OPTIONS("/recurring", httputil.OptionsPost)
		r.POST("/recurring", CreateRecurringPlans)
	}

	// Planned amount with ID
	{
		r.OPTIONS("/:id", OptionsPlannedAmountDetail)
		r.GET("/:id", GetPlannedAmount)
		r.PATCH("/:id", UpdatePlannedAmount)
		r.DELETE("/:id", DeletePlannedAmount)
		r.OPTIONS("/:id/due-date", httputil.OptionsPost)
		r.POST("/:id/due-date", SetPlannedAmountDueDate)
	}
}

func OptionsPlannedAmountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsPlannedAmountDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.PlannedAmount{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// UpsertPlannedAmount sets the planned amount for a category and pay
// period. When one already exists for the pair, its amount (and due
// date, if one is sent) is overwritten, otherwise a new planned amount
// is created.
func UpsertPlannedAmount(c *gin.Context) {
	var editable PlannedAmountEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &e,
		})
		return
	}

	planned, err := models.UpsertPlannedAmount(models.DB, editable.CategoryID, editable.PayPeriodID, editable.Amount, editable.DueDate)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &e,
		})
		return
	}

	// Reload for the updated values
	err = models.DB.First(&planned, planned.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &e,
		})
		return
	}

	data := newPlannedAmount(c, planned)
	c.JSON(http.StatusOK, PlannedAmountResponse{Data: &data})
}

// CreateRecurringPlans creates planned amounts for every pay period
// based on a day of the month the expense is due. Periods that already
// have a planned amount for the category are skipped.
func CreateRecurringPlans(c *gin.Context) {
	var editable RecurringPlanEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPlanResponse{
			Error: &e,
		})
		return
	}

	created, err := models.CreateRecurringPlans(models.DB, editable.CategoryID, editable.Amount, editable.DueDay, editable.Frequency)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPlanResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, RecurringPlanResponse{Created: created})
}

// GetPlannedAmounts returns a list of planned amounts.
func GetPlannedAmounts(c *gin.Context) {
	var filter PlannedAmountQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("created_at ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 planned amounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var plannedAmounts []models.PlannedAmount
	err := q.Find(&plannedAmounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlannedAmountListResponse{
			Error: &e,
		})
		return
	}

	data := make([]PlannedAmount, 0)
	for _, planned := range plannedAmounts {
		data = append(data, newPlannedAmount(c, planned))
	}

	c.JSON(http.StatusOK, PlannedAmountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetPlannedAmount returns a specific planned amount.
func GetPlannedAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	var planned models.PlannedAmount
	err = models.DB.First(&planned, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	data := newPlannedAmount(c, planned)
	c.JSON(http.StatusOK, PlannedAmountResponse{Data: &data})
}

// UpdatePlannedAmount updates an existing planned amount. Only values
// to be updated need to be specified.
func UpdatePlannedAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	var planned models.PlannedAmount
	err = models.DB.First(&planned, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PlannedAmountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	var data PlannedAmountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&planned).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	r := newPlannedAmount(c, planned)
	c.JSON(http.StatusOK, PlannedAmountResponse{Data: &r})
}

// SetPlannedAmountDueDate sets or clears the due date of a planned
// amount.
func SetPlannedAmountDueDate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	var planned models.PlannedAmount
	err = models.DB.First(&planned, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	var data PlannedAmountDueDateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	err = planned.SetDueDate(models.DB, data.DueDate)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlannedAmountResponse{
			Error: &s,
		})
		return
	}

	planned.DueDate = data.DueDate
	r := newPlannedAmount(c, planned)
	c.JSON(http.StatusOK, PlannedAmountResponse{Data: &r})
}

// DeletePlannedAmount deletes a planned amount.
func DeletePlannedAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var planned models.PlannedAmount
	err = models.DB.First(&planned, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&planned).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
