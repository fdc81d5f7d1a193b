package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/paycycle/backend/internal/controllers/v1"
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, editable v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if editable.Type == "" {
		editable.Type = models.CategoryTypeExpense
	}

	if editable.GroupID == uuid.Nil {
		editable.GroupID = createTestCategoryGroup(t, v1.CategoryGroupEditable{Type: editable.Type}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body, err := json.Marshal(editable)
	require.Nil(t, err)

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", string(body))
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.CategoryResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// TestCategoriesDBClosed verifies that errors are processed correctly
// when the database is closed.
func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	g := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestCategory(t, v1.CategoryEditable{GroupID: g.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/categories", "")
				test.AssertHTTPStatus(t, http.StatusInternalServerError, &recorder)

				var response v1.CategoryListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string // path at the category endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, tt.status, &r)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	group := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent", GroupID: group.Data.ID, SortOrder: 1})

	assert.Equal(suite.T(), "Rent", category.Data.Name)
	assert.Equal(suite.T(), group.Data.ID, category.Data.GroupID)
	assert.False(suite.T(), category.Data.Archived)
	assert.Contains(suite.T(), category.Data.Links.Group, fmt.Sprintf("/v1/category-groups/%s", group.Data.ID))
}

func (suite *TestSuiteStandard) TestCategoriesCreateErrors() {
	group := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{Type: models.CategoryTypeExpense})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Type differs from group", fmt.Sprintf(`{ "name": "Salary", "type": "income", "groupId": "%s" }`, group.Data.ID), http.StatusBadRequest},
		{"Group does not exist", fmt.Sprintf(`{ "name": "Rent", "type": "expense", "groupId": "%s" }`, uuid.New()), http.StatusNotFound},
		{"Broken JSON", `{ "name": "Broken`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	group := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{})
	other := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{})

	parent := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Everyday", GroupID: group.Data.ID, ParentOnly: true})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID, ParentID: &parent.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Subscriptions", GroupID: other.Data.ID, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All active", "", 2},
		{"Group", fmt.Sprintf("group=%s", group.Data.ID), 2},
		{"Group without categories", fmt.Sprintf("group=%s", uuid.New()), 0},
		{"Parent", fmt.Sprintf("parent=%s", parent.Data.ID), 1},
		{"Parent only", "parentOnly=true", 1},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Fuzzy name", "name=s", 1},
		{"Limit 2", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestCategoriesDefaultListing verifies that the listing only returns
// active categories by default, grouped by type and ordered by their
// sort order within the type.
func (suite *TestSuiteStandard) TestCategoriesDefaultListing() {
	expenseGroup := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{Type: models.CategoryTypeExpense})
	incomeGroup := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{Type: models.CategoryTypeIncome})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Old", GroupID: expenseGroup.Data.ID, Archived: true})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: models.CategoryTypeIncome, GroupID: incomeGroup.Data.ID, SortOrder: 1})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent", GroupID: expenseGroup.Data.ID, SortOrder: 2})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: expenseGroup.Data.ID, SortOrder: 1})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
	assert.Equal(suite.T(), "Rent", response.Data[1].Name)
	assert.Equal(suite.T(), "Salary", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rnet"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, `{ "name": "Rent", "sortOrder": 3 }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Rent", updated.Data.Name)
	assert.Equal(suite.T(), 3, updated.Data.SortOrder)
}

func (suite *TestSuiteStandard) TestCategoriesArchive() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/archive", category.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var archived v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &archived)
	assert.True(suite.T(), archived.Data.Archived)
}

// TestCategoriesArchiveWithActiveChildren verifies that a category
// can not be archived while it has active subcategories.
func (suite *TestSuiteStandard) TestCategoriesArchiveWithActiveChildren() {
	parent := createTestCategory(suite.T(), v1.CategoryEditable{})
	child := createTestCategory(suite.T(), v1.CategoryEditable{GroupID: parent.Data.GroupID, ParentID: &parent.Data.ID})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/archive", parent.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryHasActiveChildren.Error(), *response.Error)

	// Archive the child, then the parent
	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/archive", child.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/archive", parent.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
}

func (suite *TestSuiteStandard) TestCategoriesReorder() {
	group := createTestCategoryGroup(suite.T(), v1.CategoryGroupEditable{})
	first := createTestCategory(suite.T(), v1.CategoryEditable{GroupID: group.Data.ID, SortOrder: 1})
	second := createTestCategory(suite.T(), v1.CategoryEditable{GroupID: group.Data.ID, SortOrder: 2})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/reorder", second.Data.Links.Self), `{ "direction": "up" }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 1, response.Data.SortOrder)

	// The former first category now holds the second slot
	r = test.Request(suite.T(), http.MethodGet, first.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 2, response.Data.SortOrder)

	// Moving the topmost category up changes nothing
	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/reorder", second.Data.Links.Self), `{ "direction": "up" }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 1, response.Data.SortOrder)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/reorder", second.Data.Links.Self), `{ "direction": "sideways" }`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

// TestCategoriesDeleteWithData verifies that categories with
// transactions can only be archived, not deleted.
func (suite *TestSuiteStandard) TestCategoriesDeleteWithData() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: &category.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}
