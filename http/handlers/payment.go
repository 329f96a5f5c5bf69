package handlers

import (
	"donation-gateway/errors"
	"donation-gateway/services"
	"donation-gateway/utils"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type createPaymentRequest struct {
	AmountValue json.Number `json:"amount_value"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	CampaignID  string      `json:"campaign_id"`
	PhoneNumber string      `json:"phone_number"`
	Doa         string      `json:"doa"`
	Signature   string      `json:"signature"`
}

// CreatePayment is the donation intake endpoint. Accepts JSON or form bodies
// and answers with the QR url plus the status page url.
func CreatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	input, err := parseCreatePayment(r)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := charges.CreatePayment(*input)
	if err != nil {
		utils.SendError(w, errors.HTTPStatus(err), errors.Message(err))
		return
	}

	utils.SendJSON(w, http.StatusOK, result)
}

func parseCreatePayment(r *http.Request) (*services.CreatePaymentInput, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var req createPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.NewError("Invalid request body")
		}

		amount, _ := req.AmountValue.Float64()
		return &services.CreatePaymentInput{
			AmountValue: amount,
			Name:        req.Name,
			Email:       req.Email,
			CampaignID:  req.CampaignID,
			PhoneNumber: req.PhoneNumber,
			Doa:         req.Doa,
			Signature:   req.Signature,
		}, nil
	}

	// Form fallback
	if err := r.ParseForm(); err != nil {
		return nil, errors.NewError("Invalid form body")
	}

	amount, _ := strconv.ParseFloat(r.FormValue("amount_value"), 64)
	return &services.CreatePaymentInput{
		AmountValue: amount,
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		CampaignID:  r.FormValue("campaign_id"),
		PhoneNumber: r.FormValue("phone_number"),
		Doa:         r.FormValue("doa"),
		Signature:   r.FormValue("signature"),
	}, nil
}
