package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/internal/types"
	pc_uuid "github.com/paycycle/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date        types.Date      `json:"date" example:"2024-01-03"`
	Description string          `json:"description" example:"Rent Payment"`
	Amount      decimal.Decimal `json:"amount" example:"-1200.00"` // Negative amounts are outflows
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Note        string          `json:"note" example:"January rent" default:""`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Description: editable.Description,
		Amount:      editable.Amount,
		CategoryID:  editable.CategoryID,
		Note:        editable.Note,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/3b1ea324-d438-4419-882a-2fc91d71772f"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable

	// These fields are managed by categorization and reconciliation
	Categorized      bool       `json:"categorized" example:"true"`
	MatchedPlannedID *uuid.UUID `json:"matchedPlannedId"` // The planned amount this transaction was reconciled against

	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Description: model.Description,
			Amount:      model.Amount,
			CategoryID:  model.CategoryID,
			Note:        model.Note,
		},
		Categorized:      model.Categorized,
		MatchedPlannedID: model.MatchedPlannedID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	CategoryID  pc_uuid.UUID `form:"category"`                      // By ID of the category
	Categorized bool         `form:"categorized"`                   // Has a category been assigned?
	Description string       `form:"description" filterField:"false"` // By substring of the description
	FromDate    types.Date   `form:"fromDate" filterField:"false"`  // Only transactions on or after this date
	UntilDate   types.Date   `form:"untilDate" filterField:"false"` // Only transactions on or before this date
	Offset      uint         `form:"offset" filterField:"false"`    // The offset of the first transaction returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	var categoryID *uuid.UUID
	if f.CategoryID != pc_uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}

	return models.Transaction{
		CategoryID:  categoryID,
		Categorized: f.Categorized,
	}
}

// TransactionCategorizeEditable is the body for assigning a category
// to a transaction.
type TransactionCategorizeEditable struct {
	CategoryID uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	AutoMatch  bool      `json:"autoMatch" example:"true" default:"false"` // Also reconcile against an open planned amount
}
