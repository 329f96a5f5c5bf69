package services

import (
	"bytes"
	"fmt"
	"time"

	"donation-gateway/utils"

	"github.com/xuri/excelize/v2"
)

// ExportPaymentRequests writes payment requests to an .xlsx workbook for
// back-office reporting.
func ExportPaymentRequests(limit int) ([]byte, error) {
	records, err := ListPaymentRequests(limit, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Reference", "Invoice", "Donor", "Phone", "Email", "Campaign", "Amount", "Status", "Updated"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, pr := range records {
		values := []interface{}{
			pr.ClientReferenceID,
			pr.InvoiceNo,
			pr.CustomerName,
			pr.PhoneNumber,
			pr.Email,
			pr.CampaignID,
			utils.FormatAmount(pr.Amount),
			pr.Status,
			pr.DateUpdated.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing export workbook: %w", err)
	}

	return buf.Bytes(), nil
}
