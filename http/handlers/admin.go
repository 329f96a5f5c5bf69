package handlers

import (
	"donation-gateway/errors"
	"donation-gateway/services"
	"donation-gateway/utils"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// GetPaymentRequests lists payment requests as JSON, newest first.
func GetPaymentRequests(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	records, err := services.ListPaymentRequests(limit, offset)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error listing payment requests")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "", records)
}

// GetPaymentRequest returns one payment request by client reference id.
func GetPaymentRequest(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		utils.SendError(w, http.StatusBadRequest, "Missing ref")
		return
	}

	pr, err := services.GetPaymentRequestByReference(ref)
	if err != nil {
		utils.SendError(w, errors.HTTPStatus(err), errors.Message(err))
		return
	}

	utils.SendSuccess(w, http.StatusOK, "", pr)
}

// ExportPayments streams the payment request list as an .xlsx workbook.
func ExportPayments(w http.ResponseWriter, r *http.Request) {
	data, err := services.ExportPaymentRequests(1000)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error exporting payment requests")
		return
	}

	filename := fmt.Sprintf("payments_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}

// DownloadReceipt renders a PDF receipt for a paid payment request.
func DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("paymentRequestId")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "invalid paymentRequestId")
		return
	}

	pr, err := services.GetPaymentRequestByID(id)
	if err != nil {
		utils.SendError(w, errors.HTTPStatus(err), errors.Message(err))
		return
	}

	if pr.Status != utils.StatusPaid {
		utils.SendError(w, http.StatusConflict, "receipt is only available for paid requests")
		return
	}

	campaignName := pr.CampaignID
	if campaign, err := services.GetCampaign(pr.CampaignID); err == nil {
		campaignName = campaign.CampaignName
	}

	data, err := services.GenerateReceiptPDF(pr, campaignName)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error generating receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt_"+pr.InvoiceNo+".pdf")
	w.Write(data)
}

// Healthz is the liveness endpoint.
func Healthz(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
