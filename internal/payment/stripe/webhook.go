package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the processor's signature over the raw request body.
const SignatureHeader = "Stripe-Signature"

// DefaultTolerance rejects events whose signed timestamp is too far from now.
const DefaultTolerance = 5 * time.Minute

const EventCheckoutSessionCompleted = "checkout.session.completed"

var (
	ErrMissingSignature = errors.New("no signature header")
	ErrInvalidSignature = errors.New("signature verification failed")
	ErrTimestampTooOld  = errors.New("signed timestamp outside tolerance")
	ErrMissingSecret    = errors.New("webhook secret is not configured")
	ErrMalformedHeader  = errors.New("malformed signature header")
)

// Event is the processor's notification envelope. Only the fields this
// service consumes are mapped.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// CheckoutSession is the payload of a checkout.session.completed event.
// ClientReferenceID carries the account id the frontend attached when it
// opened the checkout page.
type CheckoutSession struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	ClientReferenceID string `json:"client_reference_id"`
	AmountTotal       int64  `json:"amount_total"`
}

// Package amounts (in cents) and the tokens they buy.
var packageTokens = map[int64]int{
	199: 42,  // Starter
	499: 155, // Professional
	999: 400, // Enterprise
}

// starterTokens is granted when the paid amount matches no known package.
const starterTokens = 42

// TokensForAmount maps a paid amount to a token grant.
func TokensForAmount(amount int64) int {
	if tokens, ok := packageTokens[amount]; ok {
		return tokens
	}
	return starterTokens
}

// ConstructEvent verifies the signature over the exact raw payload bytes and
// only then parses them. The signature is computed over "<t>.<body>", so the
// body must not be parsed and re-serialized before verification.
func ConstructEvent(payload []byte, sigHeader, secret string) (Event, error) {
	var event Event

	if err := VerifySignature(payload, sigHeader, secret, DefaultTolerance); err != nil {
		return event, err
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("parsing event payload: %w", err)
	}

	return event, nil
}

// VerifySignature checks the "t=<unix>,v1=<hex>" header against an
// HMAC-SHA256 of "<t>.<payload>" keyed with the shared secret. Multiple v1
// candidates are accepted (the processor sends more than one during secret
// rotation).
func VerifySignature(payload []byte, sigHeader, secret string, tolerance time.Duration) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if sigHeader == "" {
		return ErrMissingSignature
	}

	var timestamp int64 = -1
	var candidates []string

	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			t, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrMalformedHeader
			}
			timestamp = t
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}

	if timestamp < 0 || len(candidates) == 0 {
		return ErrMalformedHeader
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return ErrTimestampTooOld
		}
	}

	expected := ComputeSignature(timestamp, payload, secret)
	for _, candidate := range candidates {
		sig, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// ComputeSignature returns the HMAC-SHA256 of "<timestamp>.<payload>".
func ComputeSignature(timestamp int64, payload []byte, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.", timestamp)
	h.Write(payload)
	return h.Sum(nil)
}

// SignatureHeaderFor builds a valid header for the given payload. Used by
// tests and local tooling to simulate processor deliveries.
func SignatureHeaderFor(timestamp int64, payload []byte, secret string) string {
	sig := ComputeSignature(timestamp, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(sig))
}
