package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"donation-gateway/config"
	"donation-gateway/errors"
	"donation-gateway/services"
	"donation-gateway/utils"
)

func validIntake() services.CreatePaymentInput {
	return services.CreatePaymentInput{
		AmountValue: 50000,
		Name:        "Siti Aminah",
		Email:       "siti@example.com",
		CampaignID:  "CAMP-0001",
		PhoneNumber: "+628123456789",
	}
}

func newChargeGateway(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config.AppConfig.PivotBaseURL = srv.URL
	require.NoError(t, services.SaveToken("tok-test"))
}

func TestChargeService_CreatePayment_Success(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	var gotAuth, gotRequestID string
	var gotBody map[string]interface{}
	newChargeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/payments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-REQUEST-ID")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": "00", "data": {"id": "pay_1", "chargeDetails": [{"qr": {"qrUrl": "https://qr.example/abc"}}]}}`))
	})

	svc := services.NewChargeService(services.NewTokenService())
	result, err := svc.CreatePayment(validIntake())
	require.NoError(t, err)
	require.Equal(t, "https://qr.example/abc", result.QRUrl)
	require.Contains(t, result.PaymentStatusURL, "/payment-status?paymentRequestId=")

	require.Equal(t, "Bearer tok-test", gotAuth)
	require.Len(t, gotRequestID, 17) // YYYYMMDDHHMM-XXXX

	// The reference id the gateway saw must resolve back to the record
	clientRef := gotBody["clientReferenceId"].(string)
	pr, err := services.GetPaymentRequestByReference(clientRef)
	require.NoError(t, err)
	require.Equal(t, utils.StatusPending, pr.Status)
	require.Equal(t, "https://qr.example/abc", pr.QRImage)
	require.NotEmpty(t, pr.Response)
	require.Equal(t, 50000.0, pr.Amount)
}

func TestChargeService_CreatePayment_MissingFields(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	cases := []struct {
		mutate  func(*services.CreatePaymentInput)
		message string
	}{
		{func(in *services.CreatePaymentInput) { in.AmountValue = 0 }, "Missing amount_value"},
		{func(in *services.CreatePaymentInput) { in.Name = "" }, "Missing name"},
		{func(in *services.CreatePaymentInput) { in.Email = "" }, "Missing email"},
		{func(in *services.CreatePaymentInput) { in.CampaignID = "" }, "Missing campaign_id"},
		{func(in *services.CreatePaymentInput) { in.PhoneNumber = "" }, "Missing phone_number"},
	}

	svc := services.NewChargeService(services.NewTokenService())

	for _, tc := range cases {
		in := validIntake()
		tc.mutate(&in)

		_, err := svc.CreatePayment(in)
		require.Error(t, err)
		require.Equal(t, errors.Invalid, errors.KindOf(err))
		require.Equal(t, tc.message, errors.Message(err))
	}

	// Nothing persisted on any validation failure
	records, err := services.ListPaymentRequests(10, 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestChargeService_CreatePayment_MalformedContacts(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	svc := services.NewChargeService(services.NewTokenService())

	in := validIntake()
	in.Email = "not-an-email"
	_, err := svc.CreatePayment(in)
	require.Error(t, err)
	require.Equal(t, errors.Invalid, errors.KindOf(err))
	require.Contains(t, errors.Message(err), "invalid email format")

	in = validIntake()
	in.PhoneNumber = "08-12-34"
	_, err = svc.CreatePayment(in)
	require.Error(t, err)
	require.Contains(t, errors.Message(err), "invalid phone format")
}

func TestChargeService_CreatePayment_GatewayRejection(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	newChargeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": "97", "message": "amount below minimum"}`))
	})

	svc := services.NewChargeService(services.NewTokenService())
	_, err := svc.CreatePayment(validIntake())
	require.Error(t, err)
	require.Equal(t, errors.Upstream, errors.KindOf(err))
	require.Contains(t, errors.Message(err), "amount below minimum")

	// The Pending record stays behind without a gateway response
	records, err := services.ListPaymentRequests(10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, utils.StatusPending, records[0].Status)
	require.Empty(t, records[0].Response)
	require.Empty(t, records[0].QRImage)
}

func TestChargeService_CreatePayment_EmptyChargeDetails(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	newChargeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": "00", "message": "Success", "data": {"chargeDetails": []}}`))
	})

	svc := services.NewChargeService(services.NewTokenService())
	_, err := svc.CreatePayment(validIntake())
	require.Error(t, err)
	require.Equal(t, errors.Upstream, errors.KindOf(err))
	require.Contains(t, errors.Message(err), "chargeDetails")
}

func TestChargeService_CreatePayment_MissingQRUrl(t *testing.T) {
	setupTestDB(t)
	setupTestConfig(t)

	newChargeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": "00", "message": "Success", "data": {"chargeDetails": [{"qr": {}}]}}`))
	})

	svc := services.NewChargeService(services.NewTokenService())
	_, err := svc.CreatePayment(validIntake())
	require.Error(t, err)
	require.Contains(t, errors.Message(err), "qrUrl")
}
