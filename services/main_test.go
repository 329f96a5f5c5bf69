package services_test

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"donation-gateway/config"
	"donation-gateway/db"
)

// setupTestDB wires db.DB to an in-memory sqlite database with the same
// schema the Postgres layer creates. Timestamps are RFC3339 text columns, so
// the services SQL runs unchanged.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	conn.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE campaigns (
		id TEXT PRIMARY KEY,
		campaign_name TEXT NOT NULL
	);

	CREATE TABLE payment_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
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
		date_updated TEXT NOT NULL
	);

	CREATE TABLE gateway_settings (
		name TEXT PRIMARY KEY,
		access_token TEXT DEFAULT '',
		token_generated_at TEXT DEFAULT ''
	);

	CREATE TABLE webhook_events (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		client_reference_id TEXT,
		payload TEXT NOT NULL,
		outcome TEXT NOT NULL,
		received_at TEXT NOT NULL
	);

	INSERT INTO gateway_settings (name) VALUES ('pivot');
	INSERT INTO campaigns (id, campaign_name) VALUES ('CAMP-0001', 'General Donation');
	`

	if _, err := conn.Exec(schema); err != nil {
		t.Fatal(err)
	}

	db.DB = conn
	t.Cleanup(func() {
		conn.Close()
		db.DB = nil
	})

	return conn
}

// setupTestConfig gives each test a clean config with Kafka disabled and the
// default notification threshold.
func setupTestConfig(t *testing.T) {
	t.Helper()

	config.AppConfig = config.Config{
		PivotEnv:         "Staging",
		PivotBaseURL:     "http://gateway.invalid",
		PivotCallbackKey: "test-callback-key",
		TokenTTLMinutes:  50,
		PublicBaseURL:    "http://localhost:8080",
		SuccessReturnURL: "http://localhost:8080/payment-status",
		FailureReturnURL: "http://localhost:8080/payment-status",
		NotifyMinIDR:     20000,
		NotifyTimezone:   "Asia/Jakarta",
	}
}
