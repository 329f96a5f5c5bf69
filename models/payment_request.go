package models

import "time"

// PaymentRequest is one donation/checkout attempt. client_reference_id is the
// correlation key the gateway echoes back in webhooks; everything except
// status, response, notified_at and date_updated is immutable after creation.
type PaymentRequest struct {
	ID                int        `json:"id"`
	ClientReferenceID string     `json:"client_reference_id"`
	InvoiceNo         string     `json:"invoice_no"`
	CustomerName      string     `json:"customer_name"`
	PhoneNumber       string     `json:"phone_number"`
	Email             string     `json:"email"`
	Amount            float64    `json:"amount"`
	CampaignID        string     `json:"campaign_id"`
	Doa               string     `json:"doa,omitempty"`
	Signature         string     `json:"signature,omitempty"`
	Status            string     `json:"status"`
	QRImage           string     `json:"qr_image,omitempty"`
	Response          string     `json:"-"`
	NotifiedAt        *time.Time `json:"notified_at,omitempty"`
	DateUpdated       time.Time  `json:"date_updated"`
}

type Campaign struct {
	ID           string `json:"id"`
	CampaignName string `json:"campaign_name"`
}
