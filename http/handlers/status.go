package handlers

import (
	"donation-gateway/logger"
	"donation-gateway/services"
	"donation-gateway/utils"
	"html/template"
	"net/http"
	"strconv"
)

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>Payment Status</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto;">
{{if .Error}}
	<h2>Payment not found</h2>
	<p>{{.Error}}</p>
{{else}}
	<h2>Payment Status</h2>
	<table>
		<tr><td><strong>Invoice</strong></td><td>{{.Request.InvoiceNo}}</td></tr>
		<tr><td><strong>Donor</strong></td><td>{{.Request.CustomerName}}</td></tr>
		<tr><td><strong>Campaign</strong></td><td>{{.CampaignName}}</td></tr>
		<tr><td><strong>Amount</strong></td><td>{{.AmountLabel}}</td></tr>
		<tr><td><strong>Status</strong></td><td>{{.Request.Status}}</td></tr>
	</table>
	{{if .Request.QRImage}}<p><img src="{{.Request.QRImage}}" alt="QR code" width="240"></p>{{end}}
{{end}}
</body>
</html>`))

type statusPageContext struct {
	Request      interface{}
	CampaignName string
	AmountLabel  string
	Error        string
}

// PaymentStatus renders the human-facing status page for one payment
// request, including its campaign's display name.
func PaymentStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	idParam := r.URL.Query().Get("paymentRequestId")
	if idParam == "" {
		renderStatus(w, statusPageContext{Error: "paymentRequestId is required"})
		return
	}

	id, err := strconv.Atoi(idParam)
	if err != nil {
		renderStatus(w, statusPageContext{Error: "invalid paymentRequestId"})
		return
	}

	pr, err := services.GetPaymentRequestByID(id)
	if err != nil {
		renderStatus(w, statusPageContext{Error: "payment request not found"})
		return
	}

	campaignName := pr.CampaignID
	if campaign, err := services.GetCampaign(pr.CampaignID); err == nil {
		campaignName = campaign.CampaignName
	}

	renderStatus(w, statusPageContext{
		Request:      pr,
		CampaignName: campaignName,
		AmountLabel:  utils.FormatIDR(pr.Amount),
	})
}

func renderStatus(w http.ResponseWriter, ctx statusPageContext) {
	if err := statusTemplate.Execute(w, ctx); err != nil {
		logger.Error("Failed to render status page: %v", err)
	}
}
