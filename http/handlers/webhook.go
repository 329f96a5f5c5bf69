package handlers

import (
	"donation-gateway/config"
	"donation-gateway/logger"
	"donation-gateway/utils"
	"io"
	"net/http"
)

// Callback receives Pivot's asynchronous payment notifications. Requests
// must carry the shared-secret X-API-Key header; everything after that is
// acknowledged with 200 and a plain text body so the gateway never retries.
func Callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	apiKey := r.Header.Get("X-API-Key")
	if config.AppConfig.PivotCallbackKey == "" || apiKey != config.AppConfig.PivotCallbackKey {
		logger.Warn("Webhook rejected: invalid X-API-Key")
		utils.SendJSON(w, http.StatusUnauthorized, map[string]string{
			"status":  "error",
			"message": "Unauthorized - Invalid X-API-Key",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	ack := reconciler.HandleEvent(body)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ack))
}
