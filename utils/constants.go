package utils

// Payment Request Status Constants
const (
	StatusPending = "Pending"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
	StatusExpired = "EXPIRED"
)

// Gateway Webhook Events
const (
	EventPaymentPaid = "PAYMENT.PAID"
	EventPaymentTest = "PAYMENT.TEST"
)

// Published Kafka Events
const (
	EventCreated = "payment.created"
	EventUpdated = "payment.updated"
)

// statusTransitions is the closed transition graph. Webhooks reporting a
// transition outside it are logged and skipped instead of overwriting.
var statusTransitions = map[string][]string{
	StatusPending: {StatusPaid, StatusFailed, StatusExpired},
	StatusPaid:    {},
	StatusFailed:  {},
	StatusExpired: {},
}

// CanTransition reports whether a record in `from` may move to `to`.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave the status.
func IsTerminal(status string) bool {
	next, ok := statusTransitions[status]
	return ok && len(next) == 0
}
