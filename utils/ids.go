package utils

import (
	"crypto/rand"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultTimezone is the timezone reference IDs are stamped in.
const DefaultTimezone = "Asia/Jakarta"

// randomSuffix draws n characters from the 36-symbol uppercase-alphanumeric
// alphabet. Not a cryptographic token; collision space is 36^n per prefix.
func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

// GenerateReferenceID returns the client reference id for a new payment
// request: hour-resolution timestamp in tz plus a 4-char random suffix, 14
// characters total. Time-prefixing keeps IDs sortable and debuggable without
// a central counter.
func GenerateReferenceID(tz string) string {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006010215") + randomSuffix(4)
}

// GenerateInvoiceNo returns a human-facing invoice number, "INV" plus 7
// random characters.
func GenerateInvoiceNo() string {
	return "INV" + randomSuffix(7)
}

// GenerateRequestID returns the per-call X-REQUEST-ID correlation header
// value, minute-resolution timestamp plus a 4-char suffix. Never persisted.
func GenerateRequestID() string {
	return time.Now().Format("200601021504-") + randomSuffix(4)
}
