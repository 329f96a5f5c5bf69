package services

import (
	"donation-gateway/config"
	"donation-gateway/logger"
	"donation-gateway/models"
	"donation-gateway/utils"
	"encoding/json"
	"sync"

	appErrors "donation-gateway/errors"
)

// Acknowledgment strings returned to the gateway. The callback endpoint
// always answers 200 with one of these; Pivot must never be told to retry.
const (
	AckOK     = "Ok"
	AckTest   = "Ok - TEST"
	AckSendWA = "Ok - Send WA"
	AckFailed = "Gagal"
)

// Reconciler applies gateway webhook events to the payment request store and
// drives the notification side effects.
type Reconciler struct {
	wa   WhatsAppSender
	mail ReceiptMailer

	// one lock per client reference id, so replays and out-of-order
	// deliveries for the same payment serialize instead of racing
	refLocks sync.Map
}

func NewReconciler(wa WhatsAppSender, mail ReceiptMailer) *Reconciler {
	return &Reconciler{wa: wa, mail: mail}
}

func (r *Reconciler) lockRef(clientRef string) *sync.Mutex {
	mu, _ := r.refLocks.LoadOrStore(clientRef, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HandleEvent processes one raw webhook body and returns the acknowledgment
// string for the gateway. Internal failures are logged with the offending
// payload and acknowledged; they never become transport errors.
func (r *Reconciler) HandleEvent(raw []byte) string {
	var payload models.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Error("Failed to parse Pivot webhook: %v | Data: %s", err, string(raw))
		LogWebhookEvent("unparseable", "", string(raw), "parse error")
		return AckFailed + ": invalid payload"
	}

	switch payload.Event {
	case utils.EventPaymentTest:
		LogWebhookEvent(payload.Event, payload.Data.ClientReferenceID, string(raw), "test event")
		return AckTest
	case utils.EventPaymentPaid:
		return r.handlePaymentPaid(payload, raw)
	default:
		// Acknowledge everything we do not handle without touching any record
		logger.Info("Unhandled Pivot event %q - acknowledging", payload.Event)
		LogWebhookEvent(payload.Event, payload.Data.ClientReferenceID, string(raw), "ignored")
		return AckOK
	}
}

func (r *Reconciler) handlePaymentPaid(payload models.WebhookPayload, raw []byte) string {
	data := payload.Data
	clientRef := data.ClientReferenceID

	mu := r.lockRef(clientRef)
	mu.Lock()
	defer mu.Unlock()

	pr, err := GetPaymentRequestByReference(clientRef)
	if err != nil {
		if appErrors.KindOf(err) == appErrors.NotFound {
			// A webhook for an unknown reference never creates a record
			logger.Warn("Webhook for unknown clientReferenceId %q dropped", clientRef)
			LogWebhookEvent(payload.Event, clientRef, string(raw), "unknown reference")
			return AckOK
		}
		logger.Error("Failed to load payment request for webhook: %v | Data: %s", err, string(raw))
		LogWebhookEvent(payload.Event, clientRef, string(raw), "lookup error")
		return AckFailed + ": " + err.Error()
	}

	if !utils.CanTransition(pr.Status, data.Status) {
		logger.Warn("Rejecting status transition %s -> %s for %s", pr.Status, data.Status, clientRef)
		LogWebhookEvent(payload.Event, clientRef, string(raw), "transition rejected")
		return AckOK
	}

	// The notification gate is decided under the reference lock and written
	// in the same UPDATE as the status, so a replayed webhook can never send
	// a second message.
	notify := data.Status == utils.StatusPaid &&
		data.Amount.Value >= config.AppConfig.NotifyMinIDR &&
		pr.PhoneNumber != "" &&
		pr.NotifiedAt == nil

	logger.Info("Webhook %s for %s: %s -> %s (paidAt=%q)", payload.Event, clientRef, pr.Status, data.Status, data.PaidAt())

	if err := ApplyWebhookUpdate(clientRef, data.Status, string(raw), notify); err != nil {
		logger.Error("Failed to apply webhook update: %v | Data: %s", err, string(raw))
		LogWebhookEvent(payload.Event, clientRef, string(raw), "update error")
		return AckFailed + ": " + err.Error()
	}

	publishPaymentEvent(utils.EventUpdated, pr.ID, clientRef, pr.Amount, data.Status)

	ack := AckOK
	if notify {
		amountLabel := utils.FormatIDR(data.Amount.Value)
		message := DonationThanksMessage(data.Customer.GivenName, amountLabel)
		if err := r.wa.Send(pr.PhoneNumber, message); err != nil {
			// Messaging failure never fails the webhook
			logger.Error("WhatsApp message to %s failed: %v", pr.PhoneNumber, err)
		} else {
			ack = AckSendWA
		}
	}

	if data.Status == utils.StatusPaid && pr.Email != "" && r.mail != nil {
		if err := r.mail.SendReceipt(pr.Email, pr.CustomerName, pr.InvoiceNo, pr.Amount); err != nil {
			logger.Warn("Receipt email to %s failed: %v", pr.Email, err)
		}
	}

	LogWebhookEvent(payload.Event, clientRef, string(raw), "processed")
	return ack
}
