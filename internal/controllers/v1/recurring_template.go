package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTemplateRoutes registers the routes for recurring
// templates with the RouterGroup that is passed.
func RegisterRecurringTemplateRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTemplateList)
		r.GET("", GetRecurringTemplates)
		r.POST("", CreateRecurringTemplate)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTemplateDetail)
		r.GET("/:id", GetRecurringTemplate)
		r.PATCH("/:id", UpdateRecurringTemplate)
		r.DELETE("/:id", DeleteRecurringTemplate)
		r.OPTIONS("/:id/apply", httputil.OptionsPost)
		r.POST("/:id/apply", ApplyRecurringTemplate)
	}
}

func OptionsRecurringTemplateList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsRecurringTemplateDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.RecurringTemplate{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateRecurringTemplate creates a new recurring template.
func CreateRecurringTemplate(c *gin.Context) {
	var editable RecurringTemplateEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &e,
		})
		return
	}

	template := editable.model()

	err = models.DB.Create(&template).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTemplate(c, template)
	c.JSON(http.StatusCreated, RecurringTemplateResponse{Data: &data})
}

// GetRecurringTemplates returns a list of recurring templates.
func GetRecurringTemplates(c *gin.Context) {
	var filter RecurringTemplateQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 templates and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var templates []models.RecurringTemplate
	err := q.Find(&templates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTemplate, 0)
	for _, template := range templates {
		data = append(data, newRecurringTemplate(c, template))
	}

	c.JSON(http.StatusOK, RecurringTemplateListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetRecurringTemplate returns a specific recurring template.
func GetRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringTemplate(c, template)
	c.JSON(http.StatusOK, RecurringTemplateResponse{Data: &data})
}

// UpdateRecurringTemplate updates an existing recurring template. Only
// values to be updated need to be specified.
func UpdateRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTemplateEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	var data RecurringTemplateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&template).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	r := newRecurringTemplate(c, template)
	c.JSON(http.StatusOK, RecurringTemplateResponse{Data: &r})
}

// ApplyRecurringTemplate creates planned amounts with the template's
// amount in the passed pay periods. Periods that already have a
// planned amount for the template's category are skipped.
func ApplyRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateApplyResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateApplyResponse{
			Error: &s,
		})
		return
	}

	var data RecurringTemplateApplyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateApplyResponse{
			Error: &s,
		})
		return
	}

	applied, err := template.Apply(models.DB, data.PayPeriodIDs)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateApplyResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, RecurringTemplateApplyResponse{Applied: applied})
}

// DeleteRecurringTemplate deletes a recurring template. Planned
// amounts it created stay in place.
func DeleteRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
