package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/paycycle/backend/internal/controllers/v1"
	"github.com/paycycle/backend/internal/types"
	"github.com/paycycle/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTransaction creates a transaction via the API and returns
// the decoded response.
func createTestTransaction(t *testing.T, editable v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if editable.Description == "" {
		editable.Description = uuid.NewString()
	}

	if editable.Date.IsZero() {
		editable.Date = types.NewDate(2024, 1, 3)
	}

	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromFloat(-10)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body, err := json.Marshal(editable)
	require.Nil(t, err)

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", string(body))
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.TransactionResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// TestTransactionsDBClosed verifies that errors are processed correctly
// when the database is closed.
func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestTransaction(t, v1.TransactionEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/transactions", "")
				test.AssertHTTPStatus(t, http.StatusInternalServerError, &recorder)
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

// TestTransactionsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"Collection", "http://example.com/v1/transactions", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Existing transaction", transaction.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH"},
		{"No transaction with this ID", fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), http.StatusNotFound, ""},
		{"Invalid ID", "http://example.com/v1/transactions/NotAUUID", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, tt.status, &r)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}

// TestTransactionsCreate verifies transaction creation.
func (suite *TestSuiteStandard) TestTransactionsCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "  Rent Payment ",
		Amount:      decimal.NewFromFloat(-1200),
		CategoryID:  &category.Data.ID,
		Note:        "January rent",
	})

	assert.Equal(suite.T(), "Rent Payment", transaction.Data.Description)
	assert.True(suite.T(), transaction.Data.Amount.Equal(decimal.NewFromFloat(-1200)))
	assert.True(suite.T(), transaction.Data.Categorized)
	assert.Nil(suite.T(), transaction.Data.MatchedPlannedID)
}

func (suite *TestSuiteStandard) TestTransactionsCreateErrors() {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Unknown category", fmt.Sprintf(`{ "description": "Coffee", "date": "2024-01-03", "amount": "-4.50", "categoryId": "%s" }`, uuid.New()), http.StatusNotFound},
		{"Broken JSON", `{ "description": "Coffee" `, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "GROCERY MART", Date: types.NewDate(2024, 1, 5), CategoryID: &category.Data.ID})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Coffee Shop", Date: types.NewDate(2024, 1, 10)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Another Coffee", Date: types.NewDate(2024, 2, 1)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Description substring", "description=coffee", 2},
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 1},
		{"Categorized", "categorized=true", 1},
		{"Uncategorized", "categorized=false", 2},
		{"From date", "fromDate=2024-01-10", 2},
		{"Until date", "untilDate=2024-01-10", 2},
		{"Date range", "fromDate=2024-01-06&untilDate=2024-01-31", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestTransactionsSorting verifies that transactions are returned
// newest first.
func (suite *TestSuiteStandard) TestTransactionsSorting() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Oldest", Date: types.NewDate(2024, 1, 1)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Newest", Date: types.NewDate(2024, 3, 1)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Middle", Date: types.NewDate(2024, 2, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	assert.Equal(suite.T(), "Newest", response.Data[0].Description)
	assert.Equal(suite.T(), "Middle", response.Data[1].Description)
	assert.Equal(suite.T(), "Oldest", response.Data[2].Description)
}

// TestTransactionsUpdate verifies that the categorized flag follows the
// category reference on updates.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})
	assert.False(suite.T(), transaction.Data.Categorized)

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, fmt.Sprintf(`{ "categoryId": "%s" }`, category.Data.ID))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Categorized)

	// Clearing the category clears the flag again
	r = test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, `{ "categoryId": null }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	test.DecodeResponse(suite.T(), &r, &updated)
	assert.False(suite.T(), updated.Data.Categorized)
	assert.Nil(suite.T(), updated.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateErrors() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Unknown category", fmt.Sprintf(`{ "categoryId": "%s" }`, uuid.New()), http.StatusNotFound},
		{"Broken JSON", `{ "note": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

// TestTransactionsCategorize verifies category assignment with and
// without reconciliation.
func (suite *TestSuiteStandard) TestTransactionsCategorize() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 1, 3)})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/categorize", transaction.Data.Links.Self), fmt.Sprintf(`{ "categoryId": "%s" }`, category.Data.ID))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Categorized)
	assert.Nil(suite.T(), response.Data.MatchedPlannedID)
}

func (suite *TestSuiteStandard) TestTransactionsCategorizeAutoMatch() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	period := createTestPayPeriod(suite.T(), v1.PayPeriodEditable{StartDate: types.NewDate(2024, 1, 1), EndDate: types.NewDate(2024, 1, 14)})
	planned := createTestPlannedAmount(suite.T(), v1.PlannedAmountEditable{CategoryID: category.Data.ID, PayPeriodID: period.Data.ID})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 1, 3)})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/categorize", transaction.Data.Links.Self), fmt.Sprintf(`{ "categoryId": "%s", "autoMatch": true }`, category.Data.ID))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.MatchedPlannedID)
	assert.Equal(suite.T(), planned.Data.ID, *response.Data.MatchedPlannedID)

	// The planned amount is now cleared
	r = test.Request(suite.T(), http.MethodGet, planned.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var plannedResponse v1.PlannedAmountResponse
	test.DecodeResponse(suite.T(), &r, &plannedResponse)
	assert.True(suite.T(), plannedResponse.Data.Cleared)

	// A second transaction finds no open planned amount to match
	second := createTestTransaction(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 1, 5)})

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/categorize", second.Data.Links.Self), fmt.Sprintf(`{ "categoryId": "%s", "autoMatch": true }`, category.Data.ID))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Categorized)
	assert.Nil(suite.T(), response.Data.MatchedPlannedID)
}

func (suite *TestSuiteStandard) TestTransactionsCategorizeErrors() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Unknown category", fmt.Sprintf(`{ "categoryId": "%s" }`, uuid.New()), http.StatusNotFound},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, fmt.Sprintf("%s/categorize", transaction.Data.Links.Self), tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

// TestTransactionsNoDelete verifies that transactions cannot be
// deleted.
func (suite *TestSuiteStandard) TestTransactionsNoDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusMethodNotAllowed, &r)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
}
