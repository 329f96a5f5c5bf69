package services

import (
	"bytes"
	"donation-gateway/config"
	"donation-gateway/errors"
	"donation-gateway/logger"
	"donation-gateway/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// gatewayClient is shared by the token and charge calls; the gateway gets a
// bounded 20s before the request is abandoned.
var gatewayClient = &http.Client{Timeout: 20 * time.Second}

// TokenService acquires and caches the Pivot bearer credential.
type TokenService struct{}

func NewTokenService() *TokenService {
	return &TokenService{}
}

// Token returns a usable bearer token, reusing the persisted one while it is
// younger than the configured TTL and refreshing otherwise.
func (s *TokenService) Token() (string, error) {
	token, generatedAt, err := GetStoredToken()
	if err != nil {
		return "", err
	}

	ttl := time.Duration(config.AppConfig.TokenTTLMinutes) * time.Minute
	if token != "" && time.Since(generatedAt) < ttl {
		return token, nil
	}

	return s.Refresh()
}

// Refresh always calls the gateway's token endpoint and persists the result.
// Nothing is written to settings on any failure path.
func (s *TokenService) Refresh() (string, error) {
	if config.AppConfig.PivotMerchantID == "" || config.AppConfig.PivotMerchantSecret == "" {
		return "", errors.NewConfigurationError("pivot merchant credentials not configured")
	}

	body, _ := json.Marshal(map[string]string{"grantType": "client_credentials"})

	req, err := http.NewRequest(http.MethodPost, config.AppConfig.PivotBaseURL+"/v1/access-token", bytes.NewReader(body))
	if err != nil {
		return "", errors.E(errors.Internal, "error building token request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-MERCHANT-ID", config.AppConfig.PivotMerchantID)
	req.Header.Set("X-MERCHANT-SECRET", config.AppConfig.PivotMerchantSecret)

	resp, err := gatewayClient.Do(req)
	if err != nil {
		return "", errors.E(errors.Upstream, "token request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewUpstreamError(fmt.Sprintf("token request failed with status %d: %s", resp.StatusCode, string(raw)))
	}

	var tr models.TokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return "", errors.E(errors.Upstream, "token response is not valid JSON", err)
	}

	if tr.Data == nil {
		return "", errors.NewUpstreamError("token response missing 'data' object")
	}
	if tr.Data.AccessToken == "" {
		return "", errors.NewUpstreamError("token response missing 'accessToken'")
	}

	if err := SaveToken(tr.Data.AccessToken); err != nil {
		return "", err
	}

	logger.Info("Pivot access token refreshed")
	return tr.Data.AccessToken, nil
}
