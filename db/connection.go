package db

import (
	"database/sql"
	"donation-gateway/config"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	return nil
}

func createTables() error {
	campaignTable := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		campaign_name TEXT NOT NULL
	);`

	// Timestamps are stored as RFC3339 text and written from Go so records
	// round-trip the same way on every driver.
	paymentRequestTable := `
	CREATE TABLE IF NOT EXISTS payment_requests (
		id SERIAL PRIMARY KEY,
		client_reference_id TEXT NOT NULL UNIQUE,
		invoice_no TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		amount REAL NOT NULL,
		campaign_id TEXT,
		doa TEXT DEFAULT '',
		signature TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		qr_image TEXT DEFAULT '',
		response TEXT DEFAULT '',
		notified_at TEXT,
		date_updated TEXT NOT NULL,

		CONSTRAINT fk_campaign
			FOREIGN KEY (campaign_id)
			REFERENCES campaigns(id)
			ON DELETE SET NULL
	);`

	settingsTable := `
	CREATE TABLE IF NOT EXISTS gateway_settings (
		name TEXT PRIMARY KEY,
		access_token TEXT DEFAULT '',
		token_generated_at TEXT DEFAULT ''
	);`

	webhookEventTable := `
	CREATE TABLE IF NOT EXISTS webhook_events (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		client_reference_id TEXT,
		payload TEXT NOT NULL,
		outcome TEXT NOT NULL,
		received_at TEXT NOT NULL
	);`

	// Create campaigns first so payment_requests can reference it
	if _, err := DB.Exec(campaignTable); err != nil {
		return fmt.Errorf("error creating campaigns table: %w", err)
	}

	if _, err := DB.Exec(paymentRequestTable); err != nil {
		return fmt.Errorf("error creating payment_requests table: %w", err)
	}

	if _, err := DB.Exec(settingsTable); err != nil {
		return fmt.Errorf("error creating gateway_settings table: %w", err)
	}

	if _, err := DB.Exec(webhookEventTable); err != nil {
		return fmt.Errorf("error creating webhook_events table: %w", err)
	}

	// Settings singleton row the token manager updates in place
	if _, err := DB.Exec(`INSERT INTO gateway_settings (name) SELECT 'pivot' WHERE NOT EXISTS (SELECT 1 FROM gateway_settings WHERE name = 'pivot')`); err != nil {
		log.Println("Warning: Error inserting gateway settings row:", err)
	}

	// Insert sample campaigns if not exist
	if _, err := DB.Exec(`INSERT INTO campaigns (id, campaign_name) SELECT 'CAMP-0001', 'General Donation' WHERE NOT EXISTS (SELECT 1 FROM campaigns WHERE id = 'CAMP-0001')`); err != nil {
		log.Println("Warning: Error inserting sample campaign:", err)
	}
	if _, err := DB.Exec(`INSERT INTO campaigns (id, campaign_name) SELECT 'CAMP-0002', 'Orphanage Support' WHERE NOT EXISTS (SELECT 1 FROM campaigns WHERE id = 'CAMP-0002')`); err != nil {
		log.Println("Warning: Error inserting sample campaign:", err)
	}

	return nil
}
