package handlers

import (
	"donation-gateway/errors"
	"donation-gateway/utils"
	"net/http"
)

// RefreshToken forces a new gateway access token to be acquired and
// persisted.
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	token, err := tokens.Refresh()
	if err != nil {
		utils.SendError(w, errors.HTTPStatus(err), errors.Message(err))
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Token refreshed", map[string]string{
		"access_token": token,
	})
}
