package services

import (
	"bytes"
	"donation-gateway/config"
	"donation-gateway/errors"
	"donation-gateway/logger"
	"donation-gateway/models"
	"donation-gateway/utils"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChargeService builds and submits Pivot QR charges.
type ChargeService struct {
	tokens *TokenService
}

func NewChargeService(tokens *TokenService) *ChargeService {
	return &ChargeService{tokens: tokens}
}

// CreatePaymentInput is the normalized intake payload.
type CreatePaymentInput struct {
	AmountValue float64
	Name        string
	Email       string
	CampaignID  string
	PhoneNumber string
	Doa         string
	Signature   string
}

// CreatePaymentResult carries what the client needs to proceed.
type CreatePaymentResult struct {
	QRUrl            string `json:"qr_url"`
	PaymentStatusURL string `json:"paymentStatus_url"`
}

// Validate rejects the request naming the first missing field, before
// anything is persisted.
func (in CreatePaymentInput) Validate() error {
	if in.AmountValue == 0 {
		return errors.NewInvalidParamsError("Missing amount_value")
	}
	if in.Name == "" {
		return errors.NewInvalidParamsError("Missing name")
	}
	if in.Email == "" {
		return errors.NewInvalidParamsError("Missing email")
	}
	if in.CampaignID == "" {
		return errors.NewInvalidParamsError("Missing campaign_id")
	}
	if in.PhoneNumber == "" {
		return errors.NewInvalidParamsError("Missing phone_number")
	}
	if in.AmountValue < 0 {
		return errors.NewInvalidParamsError("amount_value must be greater than 0")
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidatePhone(in.PhoneNumber); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	return nil
}

// CreatePayment runs the full intake flow: generate ids, persist a Pending
// record, submit the charge, extract the QR url and attach the gateway
// response. A gateway failure leaves the Pending record in place with no
// response attached.
func (s *ChargeService) CreatePayment(in CreatePaymentInput) (*CreatePaymentResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	referenceID := utils.GenerateReferenceID(config.AppConfig.NotifyTimezone)
	invoiceNo := utils.GenerateInvoiceNo()

	pr := &models.PaymentRequest{
		ClientReferenceID: referenceID,
		InvoiceNo:         invoiceNo,
		CustomerName:      in.Name,
		PhoneNumber:       in.PhoneNumber,
		Email:             in.Email,
		Amount:            in.AmountValue,
		CampaignID:        in.CampaignID,
		Doa:               in.Doa,
		Signature:         in.Signature,
		Status:            utils.StatusPending,
	}

	// The record must exist before the gateway call: the reference id is the
	// correlation key Pivot echoes back in webhooks.
	if err := InsertPaymentRequest(pr); err != nil {
		return nil, err
	}

	token, err := s.tokens.Token()
	if err != nil {
		return nil, err
	}

	payload := buildChargePayload(in, invoiceNo, referenceID)
	raw, cr, err := s.submitCharge(payload, token)
	if err != nil {
		return nil, err
	}

	if cr.Code != "00" {
		logger.Error("Pivot rejected charge %s: code=%s message=%s", referenceID, cr.Code, cr.Message)
		return nil, errors.NewUpstreamError(fmt.Sprintf("Error Pivot: %s", cr.Message))
	}

	if len(cr.Data.ChargeDetails) == 0 {
		logger.Error("Pivot charge %s accepted but chargeDetails empty", referenceID)
		return nil, errors.NewUpstreamError(fmt.Sprintf("Error Pivot: %s - empty chargeDetails", cr.Message))
	}

	qrURL := cr.Data.ChargeDetails[0].QR.QRUrl
	if qrURL == "" {
		logger.Error("Pivot charge %s accepted but qrUrl missing", referenceID)
		return nil, errors.NewUpstreamError(fmt.Sprintf("Error Pivot: %s - missing qrUrl", cr.Message))
	}

	if err := AttachChargeResult(referenceID, string(raw), qrURL); err != nil {
		return nil, err
	}

	publishPaymentEvent(utils.EventCreated, pr.ID, referenceID, in.AmountValue, utils.StatusPending)

	return &CreatePaymentResult{
		QRUrl:            qrURL,
		PaymentStatusURL: fmt.Sprintf("%s/payment-status?paymentRequestId=%d", config.AppConfig.PublicBaseURL, pr.ID),
	}, nil
}

func buildChargePayload(in CreatePaymentInput, invoiceNo, referenceID string) models.ChargeRequest {
	return models.ChargeRequest{
		Amount: models.ChargeAmount{
			Value:    in.AmountValue,
			Currency: "IDR",
		},
		Payer: models.ChargePayer{
			GivenName:   in.Name,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
		},
		InvoiceNo:         invoiceNo,
		ClientReferenceID: referenceID,
		PaymentMethod:     models.PaymentMethod{Type: "QR"},
		SuccessReturnURL:  config.AppConfig.SuccessReturnURL,
		FailureReturnURL:  config.AppConfig.FailureReturnURL,
	}
}

func (s *ChargeService) submitCharge(payload models.ChargeRequest, token string) ([]byte, *models.ChargeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, errors.E(errors.Internal, "error encoding charge payload", err)
	}

	req, err := http.NewRequest(http.MethodPost, config.AppConfig.PivotBaseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, nil, errors.E(errors.Internal, "error building charge request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-REQUEST-ID", utils.GenerateRequestID())

	start := time.Now()
	resp, err := gatewayClient.Do(req)
	if err != nil {
		return nil, nil, errors.E(errors.Upstream, "charge request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.E(errors.Upstream, "error reading charge response", err)
	}

	logger.Debug("Pivot charge call took %s, status %d", time.Since(start), resp.StatusCode)

	var cr models.ChargeResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, nil, errors.E(errors.Upstream, "charge response is not valid JSON", err)
	}

	return raw, &cr, nil
}
