package services

import (
	"bytes"
	"donation-gateway/models"
	"donation-gateway/utils"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF renders a donation receipt for a paid payment request.
func GenerateReceiptPDF(pr *models.PaymentRequest, campaignName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Donation Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Invoice: %s", pr.InvoiceNo))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Reference: %s", pr.ClientReferenceID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Donor: %s", pr.CustomerName))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Campaign: %s", campaignName))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %s", utils.FormatIDR(pr.Amount)))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Status: %s", pr.Status))
	pdf.Ln(14)

	pdf.Cell(40, 10, "Thank you for your donation.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return buf.Bytes(), nil
}
