package importer

import (
	"github.com/paycycle/backend/internal/models"
	"gorm.io/gorm"
)

// Create stores the parsed rows as transactions. Rows that match an
// already imported transaction or an earlier row of the same batch are
// skipped. Rows whose description matches an active categorization
// rule are created with the rule's category set.
//
// All writes happen in a single database transaction, a failing row
// rolls back the whole import.
func Create(db *gorm.DB, rows []Row) (Result, error) {
	var result Result

	err := db.Transaction(func(tx *gorm.DB) error {
		rules, err := models.ActiveRules(tx)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(rows))

		for _, row := range rows {
			hash := row.Hash()

			if seen[hash] {
				result.Skipped++
				continue
			}
			seen[hash] = true

			var count int64
			err := tx.Model(&models.Transaction{}).Where("import_hash = ?", hash).Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				result.Skipped++
				continue
			}

			transaction := models.Transaction{
				Date:        row.Date,
				Description: row.Description,
				Amount:      row.Amount,
				ImportHash:  hash,
			}

			for _, rule := range rules {
				if rule.Matches(row.Description) {
					categoryID := rule.CategoryID
					transaction.CategoryID = &categoryID
					result.AutoCategorized++
					break
				}
			}

			err = tx.Create(&transaction).Error
			if err != nil {
				return err
			}

			result.Imported++
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
