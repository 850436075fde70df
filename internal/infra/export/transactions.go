package export

import (
	"fmt"
	"io"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Commissions"

var headers = []string{"Transaction", "Date", "Montant (€)", "Statut", "Lead", "Bien"}

// WriteTransactions gera a planilha de comissões: uma linha por transação e o total no fim.
func WriteTransactions(w io.Writer, rows []*entity.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return err
	}

	for i, t := range rows {
		line := i + 2
		amount, _ := t.Amount.Float64()
		values := []any{t.ID, t.Date.Format("02/01/2006"), amount, string(t.Status), t.LeadID, t.Property}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	totalLine := len(rows) + 2
	if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalLine), "Total"); err != nil {
		return err
	}
	total, _ := entity.TransactionTotal(rows).Float64()
	if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalLine), total); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("B%d", totalLine), fmt.Sprintf("C%d", totalLine), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "C2", fmt.Sprintf("C%d", totalLine), money); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 40); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
