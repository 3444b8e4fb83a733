package report

import (
	"bytes"
	"fmt"
	"time"

	"wallettally/internal/domain"

	"github.com/xuri/excelize/v2"
)

// TransactionsXLSX renders a transaction list as a spreadsheet for the
// admin back-office export.
func TransactionsXLSX(txs []domain.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Transactions"

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "User ID", "Type", "Amount", "Category", "Description", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, tx := range txs {
		values := []any{
			tx.ID,
			tx.UserID,
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Description,
			tx.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
