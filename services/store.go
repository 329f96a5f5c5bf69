package services

import (
	"database/sql"
	"donation-gateway/db"
	"donation-gateway/errors"
	"donation-gateway/logger"
	"donation-gateway/models"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Timestamps are persisted as RFC3339 text so the same SQL runs against
// Postgres in production and in-memory sqlite in tests.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// InsertPaymentRequest persists a new record and fills in its id.
func InsertPaymentRequest(pr *models.PaymentRequest) error {
	pr.DateUpdated = time.Now()

	err := db.DB.QueryRow(
		`INSERT INTO payment_requests
			(client_reference_id, invoice_no, customer_name, phone_number, email, amount, campaign_id, doa, signature, status, qr_image, response, date_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '', '', $11)
		 RETURNING id`,
		pr.ClientReferenceID, pr.InvoiceNo, pr.CustomerName, pr.PhoneNumber, pr.Email,
		pr.Amount, pr.CampaignID, pr.Doa, pr.Signature, pr.Status, formatTime(pr.DateUpdated),
	).Scan(&pr.ID)
	if err != nil {
		return fmt.Errorf("error saving payment request: %w", err)
	}

	return nil
}

const paymentRequestColumns = `id, client_reference_id, invoice_no, customer_name, phone_number, email, amount, campaign_id, status, qr_image, response, notified_at, date_updated`

func scanPaymentRequest(scanner interface{ Scan(dest ...any) error }) (*models.PaymentRequest, error) {
	var pr models.PaymentRequest
	var campaignID sql.NullString
	var notifiedAt sql.NullString
	var dateUpdated string

	err := scanner.Scan(
		&pr.ID, &pr.ClientReferenceID, &pr.InvoiceNo, &pr.CustomerName, &pr.PhoneNumber,
		&pr.Email, &pr.Amount, &campaignID, &pr.Status, &pr.QRImage, &pr.Response,
		&notifiedAt, &dateUpdated,
	)
	if err != nil {
		return nil, err
	}

	pr.CampaignID = campaignID.String
	pr.DateUpdated = parseTime(dateUpdated)
	if notifiedAt.Valid && notifiedAt.String != "" {
		t := parseTime(notifiedAt.String)
		pr.NotifiedAt = &t
	}

	return &pr, nil
}

// GetPaymentRequestByReference looks a record up by its client reference id.
func GetPaymentRequestByReference(clientRef string) (*models.PaymentRequest, error) {
	row := db.DB.QueryRow(
		`SELECT `+paymentRequestColumns+` FROM payment_requests WHERE client_reference_id = $1`,
		clientRef,
	)

	pr, err := scanPaymentRequest(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("payment request not found: %s", clientRef))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading payment request: %w", err)
	}

	return pr, nil
}

// GetPaymentRequestByID looks a record up by its primary key.
func GetPaymentRequestByID(id int) (*models.PaymentRequest, error) {
	row := db.DB.QueryRow(
		`SELECT `+paymentRequestColumns+` FROM payment_requests WHERE id = $1`,
		id,
	)

	pr, err := scanPaymentRequest(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("payment request not found: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading payment request: %w", err)
	}

	return pr, nil
}

// ListPaymentRequests returns records newest-first.
func ListPaymentRequests(limit, offset int) ([]models.PaymentRequest, error) {
	rows, err := db.DB.Query(
		`SELECT `+paymentRequestColumns+` FROM payment_requests ORDER BY id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing payment requests: %w", err)
	}
	defer rows.Close()

	var out []models.PaymentRequest
	for rows.Next() {
		pr, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pr)
	}

	return out, rows.Err()
}

// AttachChargeResult stores the raw gateway response and the QR image URL on
// a freshly created record. qr_image is set once and never overwritten.
func AttachChargeResult(clientRef, rawResponse, qrURL string) error {
	_, err := db.DB.Exec(
		`UPDATE payment_requests
		 SET response = $1,
		     qr_image = CASE WHEN qr_image = '' THEN $2 ELSE qr_image END,
		     date_updated = $3
		 WHERE client_reference_id = $4`,
		rawResponse, qrURL, formatTime(time.Now()), clientRef,
	)
	if err != nil {
		return fmt.Errorf("error attaching charge result: %w", err)
	}
	return nil
}

// ApplyWebhookUpdate overwrites status, response and date_updated for the
// matched record. When markNotified is set, notified_at is written in the
// same statement so the notification gate and the status change cannot
// diverge.
func ApplyWebhookUpdate(clientRef, status, rawPayload string, markNotified bool) error {
	now := formatTime(time.Now())

	var err error
	if markNotified {
		_, err = db.DB.Exec(
			`UPDATE payment_requests SET status = $1, response = $2, date_updated = $3, notified_at = $4 WHERE client_reference_id = $5`,
			status, rawPayload, now, now, clientRef,
		)
	} else {
		_, err = db.DB.Exec(
			`UPDATE payment_requests SET status = $1, response = $2, date_updated = $3 WHERE client_reference_id = $4`,
			status, rawPayload, now, clientRef,
		)
	}
	if err != nil {
		return fmt.Errorf("error applying webhook update: %w", err)
	}
	return nil
}

// GetCampaign returns a fundraising campaign by id.
func GetCampaign(id string) (*models.Campaign, error) {
	var c models.Campaign
	err := db.DB.QueryRow(`SELECT id, campaign_name FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.CampaignName)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("campaign not found: %s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading campaign: %w", err)
	}
	return &c, nil
}

// GetStoredToken returns the persisted gateway token and when it was issued.
func GetStoredToken() (string, time.Time, error) {
	var token, generatedAt string
	err := db.DB.QueryRow(`SELECT access_token, token_generated_at FROM gateway_settings WHERE name = 'pivot'`).
		Scan(&token, &generatedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, errors.NewConfigurationError("gateway settings row missing")
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error loading gateway settings: %w", err)
	}
	return token, parseTime(generatedAt), nil
}

// SaveToken persists a freshly acquired token with its issue time.
func SaveToken(token string) error {
	_, err := db.DB.Exec(
		`UPDATE gateway_settings SET access_token = $1, token_generated_at = $2 WHERE name = 'pivot'`,
		token, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("error saving gateway token: %w", err)
	}
	return nil
}

// LogWebhookEvent stores every authenticated callback for audit.
// Failures only warn; the audit trail never blocks reconciliation.
func LogWebhookEvent(event, clientRef, payload, outcome string) {
	_, err := db.DB.Exec(
		`INSERT INTO webhook_events (id, event, client_reference_id, payload, outcome, received_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), event, clientRef, payload, outcome, formatTime(time.Now()),
	)
	if err != nil {
		logger.Warn("Failed to log webhook event: %v", err)
	}
}
