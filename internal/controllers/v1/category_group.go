package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paycycle/backend/internal/httputil"
	"github.com/paycycle/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCategoryGroupRoutes registers the routes for category groups
// with the RouterGroup that is passed.
func RegisterCategoryGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryGroupList)
		r.GET("", GetCategoryGroups)
		r.POST("", CreateCategoryGroup)
	}

	// Category group with ID
	{
		r.OPTIONS("/:id", OptionsCategoryGroupDetail)
		r.GET("/:id", GetCategoryGroup)
		r.PATCH("/:id", UpdateCategoryGroup)
		r.DELETE("/:id", DeleteCategoryGroup)
	}
}

func OptionsCategoryGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryGroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.CategoryGroup{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateCategoryGroup creates a new category group.
func CreateCategoryGroup(c *gin.Context) {
	var editable CategoryGroupEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &e,
		})
		return
	}

	group := editable.model()

	err = models.DB.Create(&group).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &e,
		})
		return
	}

	data := newCategoryGroup(c, group)
	c.JSON(http.StatusCreated, CategoryGroupResponse{Data: &data})
}

// GetCategoryGroups returns a list of category groups, ordered by
// their sort order.
func GetCategoryGroups(c *gin.Context) {
	var filter CategoryGroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where(&filterModel, queryFields...)

	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 category groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groups []models.CategoryGroup
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryGroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CategoryGroup, 0)
	for _, group := range groups {
		data = append(data, newCategoryGroup(c, group))
	}

	c.JSON(http.StatusOK, CategoryGroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetCategoryGroup returns a specific category group.
func GetCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	data := newCategoryGroup(c, group)
	c.JSON(http.StatusOK, CategoryGroupResponse{Data: &data})
}

// UpdateCategoryGroup updates an existing category group. Only values
// to be updated need to be specified.
func UpdateCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryGroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var data CategoryGroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&group).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	r := newCategoryGroup(c, group)
	c.JSON(http.StatusOK, CategoryGroupResponse{Data: &r})
}

// DeleteCategoryGroup deletes a category group. Groups that still
// contain categories can not be deleted.
func DeleteCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
