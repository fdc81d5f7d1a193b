// Package importer turns tabular bank exports into transactions.
//
// Parsing and persisting are separate steps: a parser reads the file
// into Row values, Create deduplicates and auto-categorizes them and
// writes them to the database in a single transaction.
package importer

import (
	"strings"

	"github.com/paycycle/backend/internal/importer/helpers"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Row is one parsed line of a bank export.
type Row struct {
	Date        types.Date      `json:"date" example:"2024-01-03"`
	Description string          `json:"description" example:"WHOLE FOODS #123"`
	Amount      decimal.Decimal `json:"amount" example:"-54.17"`
}

// Hash returns the duplicate-detection identity of the row. Rows with
// the same date, description and amount are considered the same
// transaction, matching rows both against the database and within one
// import batch.
func (r Row) Hash() string {
	return helpers.Sha256String(strings.Join([]string{
		r.Date.String(),
		strings.TrimSpace(r.Description),
		r.Amount.Round(2).String(),
	}, "|"))
}

// Result reports what an import did.
type Result struct {
	Imported        int `json:"imported" example:"27"`        // Number of transactions created
	AutoCategorized int `json:"autoCategorized" example:"12"` // How many of those a category rule matched
	Skipped         int `json:"skipped" example:"3"`          // Rows skipped as duplicates or because they could not be parsed
}
