package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"donation-gateway/http/handlers"
)

func TestCreatePayment_MethodNotAllowed(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	rr := httptest.NewRecorder()
	handlers.CreatePayment(rr, req)

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCreatePayment_MissingFieldNamesField(t *testing.T) {
	conn := setupHandlers(t)

	body := `{"amount_value": 50000, "name": "Siti", "campaign_id": "CAMP-0001", "phone_number": "+628123456789"}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handlers.CreatePayment(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "Missing email")

	// Nothing persisted
	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM payment_requests`).Scan(&count))
	require.Zero(t, count)
}

func TestCreatePayment_InvalidJSON(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handlers.CreatePayment(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreatePayment_FormBodyMissingField(t *testing.T) {
	setupHandlers(t)

	form := "amount_value=50000&name=Siti&email=siti%40example.com&phone_number=%2B628123456789"
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handlers.CreatePayment(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "Missing campaign_id")
}
