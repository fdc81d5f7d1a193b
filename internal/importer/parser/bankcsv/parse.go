// Package bankcsv parses CSV exports of bank transaction lists.
//
// Banks name their columns freely, so the parser does not expect fixed
// headers. Instead, every column role has a list of candidate
// substrings that is checked against the normalized header names, and
// the first matching column fills the role.
package bankcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/paycycle/backend/internal/importer"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ErrColumnsUnresolved is returned when the header row does not
// contain a recognizable date, description and amount column.
var ErrColumnsUnresolved = errors.New("could not identify the date, description and amount columns")

// columnRoles maps each required role to the header substrings that
// identify it. Headers are trimmed and lowercased before matching, the
// first column containing a candidate wins.
var columnRoles = []struct {
	role       string
	candidates []string
}{
	{"date", []string{"date"}},
	{"description", []string{"desc", "merchant", "name"}},
	{"amount", []string{"amount", "debit", "credit"}},
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
}

// Parse reads a CSV bank export. The first line has to be a header
// row. Rows that cannot be parsed are skipped and counted, they never
// abort the import. A missing or unresolvable header row aborts with
// an error.
func Parse(f io.Reader) ([]importer.Row, int, error) {
	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, ErrColumnsUnresolved
	}
	if err != nil {
		return nil, 0, fmt.Errorf("could not read CSV header: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var rows []importer.Row
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line, e.g. wrong field count
			skipped++
			continue
		}

		row, err := parseRow(record, columns)
		if err != nil {
			skipped++
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// resolveColumns assigns a column index to every role. It returns
// ErrColumnsUnresolved with the missing roles when any role cannot be
// filled.
func resolveColumns(header []string) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, name := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(name))
	}

	columns := make(map[string]int, len(columnRoles))
	var missing []string

	for _, role := range columnRoles {
		idx := -1

	search:
		for i, name := range normalized {
			for _, candidate := range role.candidates {
				if strings.Contains(name, candidate) {
					idx = i
					break search
				}
			}
		}

		if idx == -1 {
			missing = append(missing, role.role)
			continue
		}

		columns[role.role] = idx
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrColumnsUnresolved, strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseRow converts one CSV record into a Row.
func parseRow(record []string, columns map[string]int) (importer.Row, error) {
	date, err := parseDate(record[columns["date"]])
	if err != nil {
		return importer.Row{}, err
	}

	description := strings.TrimSpace(record[columns["description"]])
	if description == "" {
		return importer.Row{}, errors.New("the description must not be empty")
	}

	amount, err := parseAmount(record[columns["amount"]])
	if err != nil {
		return importer.Row{}, err
	}

	return importer.Row{
		Date:        date,
		Description: description,
		Amount:      amount,
	}, nil
}

func parseDate(value string) (types.Date, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return types.DateOf(t), nil
		}
	}

	return types.Date{}, fmt.Errorf("could not parse %q as a date", value)
}

func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")

	return decimal.NewFromString(value)
}
