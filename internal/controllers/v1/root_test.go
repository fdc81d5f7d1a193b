package v1_test

import (
	"net/http"

	v1 "github.com/paycycle/backend/internal/controllers/v1"
	"github.com/paycycle/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestV1Get verifies the link list for the v1 API.
func (suite *TestSuiteStandard) TestV1Get() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.Links{
		Analytics:          "http://example.com/v1/analytics",
		Categories:         "http://example.com/v1/categories",
		CategoryGroups:     "http://example.com/v1/category-groups",
		CategoryRules:      "http://example.com/v1/category-rules",
		Export:             "http://example.com/v1/export",
		Import:             "http://example.com/v1/import",
		PayPeriods:         "http://example.com/v1/pay-periods",
		PlannedAmounts:     "http://example.com/v1/planned-amounts",
		RecurringTemplates: "http://example.com/v1/recurring-templates",
		Transactions:       "http://example.com/v1/transactions",
	}, response.Links)
}

// TestV1Options verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestV1Options() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

// TestV1MethodNotAllowed verifies that unsupported methods on known
// paths are answered with 405.
func (suite *TestSuiteStandard) TestV1MethodNotAllowed() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), http.StatusMethodNotAllowed, &r)
}
