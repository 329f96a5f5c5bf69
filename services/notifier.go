package services

import (
	"donation-gateway/config"
	"donation-gateway/logger"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WhatsAppSender dispatches one outbound message. Implementations are
// fire-and-log: callers never block on delivery confirmation beyond the
// single synchronous call.
type WhatsAppSender interface {
	Send(target, message string) error
}

// FonnteSender sends WhatsApp messages through the Fonnte HTTP API.
type FonnteSender struct {
	client *http.Client
}

func NewFonnteSender() *FonnteSender {
	return &FonnteSender{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *FonnteSender) Send(target, message string) error {
	form := url.Values{}
	form.Set("target", target)
	form.Set("message", message)

	req, err := http.NewRequest(http.MethodPost, config.AppConfig.FonnteURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error building fonnte request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", config.AppConfig.FonnteToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fonnte responded with status %d", resp.StatusCode)
	}

	logger.Info("WhatsApp message sent to %s", target)
	return nil
}

// DonationThanksMessage is the confirmation text sent to a donor once their
// payment clears the notification threshold.
func DonationThanksMessage(givenName, amountLabel string) string {
	return fmt.Sprintf("Alhamdulillah, Donasi dari %s, senilai %s sudah kami terima dan tercatat.\n\n"+
		"Semoga menjadi keberkahan dan jalan kebermanfaatan, serta Allah Subhanahu wa Ta'ala membalasnya dengan yang lebih baik dan berkah. Aamiin.",
		givenName, amountLabel)
}
