package http

import (
	"donation-gateway/http/handlers"
	"donation-gateway/http/middleware"
	"net/http"
)

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes() {
	// Payment APIs
	http.HandleFunc("/payments", middleware.EnableCORS(paymentsDispatch))
	http.HandleFunc("/payment", middleware.EnableCORS(handlers.GetPaymentRequest))
	http.HandleFunc("/payments/export", middleware.EnableCORS(handlers.ExportPayments))
	http.HandleFunc("/receipt", middleware.EnableCORS(handlers.DownloadReceipt))

	// Gateway integration
	http.HandleFunc("/pivot/callback", handlers.Callback)
	http.HandleFunc("/token/refresh", middleware.EnableCORS(handlers.RefreshToken))

	// Donor-facing status page
	http.HandleFunc("/payment-status", handlers.PaymentStatus)

	http.HandleFunc("/healthz", handlers.Healthz)
}

// paymentsDispatch routes POST /payments to intake and GET /payments to the
// admin list.
func paymentsDispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handlers.GetPaymentRequests(w, r)
	default:
		handlers.CreatePayment(w, r)
	}
}
