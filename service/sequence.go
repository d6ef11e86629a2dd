package service

import (
	"fmt"
	"time"

	"pausal/database"

	"gorm.io/gorm"
)

// nextSequence atomically increments and returns the per-year counter in the
// given table. The whole allocation is a single upsert: MySQL evaluates
// LAST_INSERT_ID(expr) inside the row lock, so two concurrent allocations
// for the same year can never observe the same number. A failure here is
// fatal for the caller and worth retrying.
func nextSequence(table string, year int) (int, error) {
	var n int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"INSERT INTO "+table+" (year, last_number) VALUES (?, LAST_INSERT_ID(1)) "+
				"ON DUPLICATE KEY UPDATE last_number = LAST_INSERT_ID(last_number + 1)",
			year,
		).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT LAST_INSERT_ID()").Scan(&n).Error
	})
	if err != nil {
		return 0, fmt.Errorf("allocate %s for %d: %w", table, year, err)
	}
	return n, nil
}

// FormatInvoiceNumber renders an invoice number as YYYY-NNNN.
func FormatInvoiceNumber(year, n int) string {
	return fmt.Sprintf("%d-%04d", year, n)
}

// FormatProjectCode renders a project code as PR-YYYY-NNNN.
func FormatProjectCode(year, n int) string {
	return fmt.Sprintf("PR-%d-%04d", year, n)
}

// NextInvoiceNumber allocates the next invoice number for the year. The
// ordinal restarts at 1 each year.
func NextInvoiceNumber(year int) (string, error) {
	n, err := nextSequence("invoice_sequence", year)
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(year, n), nil
}

// NextProjectCode allocates the next project code, keyed on the current year.
func NextProjectCode() (string, error) {
	year := time.Now().Year()
	n, err := nextSequence("project_sequence", year)
	if err != nil {
		return "", err
	}
	return FormatProjectCode(year, n), nil
}
