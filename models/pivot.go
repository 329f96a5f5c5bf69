package models

// Wire types for the Pivot gateway.

// TokenResponse is the body of POST /v1/access-token.
type TokenResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

// ChargeRequest is the body submitted to POST /v2/payments.
type ChargeRequest struct {
	Amount            ChargeAmount  `json:"amount"`
	Payer             ChargePayer   `json:"payer"`
	InvoiceNo         string        `json:"invoiceNo"`
	ClientReferenceID string        `json:"clientReferenceId"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	SuccessReturnURL  string        `json:"successReturnUrl"`
	FailureReturnURL  string        `json:"failureReturnUrl"`
}

type ChargeAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type ChargePayer struct {
	GivenName   string `json:"givenName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type PaymentMethod struct {
	Type string `json:"type"`
}

// ChargeResponse is the gateway's answer to a charge submission.
type ChargeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		ID            string         `json:"id"`
		Status        string         `json:"status"`
		ChargeDetails []ChargeDetail `json:"chargeDetails"`
	} `json:"data"`
}

type ChargeDetail struct {
	PaidAt string `json:"paidAt,omitempty"`
	QR     struct {
		QRUrl string `json:"qrUrl"`
	} `json:"qr"`
}

// WebhookPayload is the asynchronous notification Pivot posts back.
type WebhookPayload struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	ID                string       `json:"id"`
	ClientReferenceID string       `json:"clientReferenceId"`
	Amount            ChargeAmount `json:"amount"`
	PaymentMethod     struct {
		Type string `json:"type"`
	} `json:"paymentMethod"`
	Status   string `json:"status"`
	Customer struct {
		GivenName string `json:"givenName"`
	} `json:"customer"`
	ChargeDetails []ChargeDetail `json:"chargeDetails"`
}

// PaidAt returns the paid timestamp of the first charge detail, if any.
func (d WebhookData) PaidAt() string {
	if len(d.ChargeDetails) > 0 {
		return d.ChargeDetails[0].PaidAt
	}
	return ""
}
