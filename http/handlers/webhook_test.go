package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"donation-gateway/http/handlers"
	"donation-gateway/services"
)

func TestCallback_InvalidKey(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/pivot/callback", strings.NewReader(`{}`))
	req.Header.Set("X-API-Key", "wrong")
	rr := httptest.NewRecorder()
	handlers.Callback(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "Invalid X-API-Key")
}

func TestCallback_MissingKey(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/pivot/callback", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handlers.Callback(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCallback_TestEvent(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/pivot/callback", strings.NewReader(`{"event": "PAYMENT.TEST", "data": {}}`))
	req.Header.Set("X-API-Key", "hook-secret")
	rr := httptest.NewRecorder()
	handlers.Callback(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, services.AckTest, rr.Body.String())
}

func TestCallback_UnknownEventStillAcks(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/pivot/callback", strings.NewReader(`{"event": "PAYMENT.CANCELLED", "data": {}}`))
	req.Header.Set("X-API-Key", "hook-secret")
	rr := httptest.NewRecorder()
	handlers.Callback(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, services.AckOK, rr.Body.String())
}

func TestCallback_MethodNotAllowed(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/pivot/callback", nil)
	rr := httptest.NewRecorder()
	handlers.Callback(rr, req)

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
