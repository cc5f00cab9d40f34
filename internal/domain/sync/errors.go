package sync

import "errors"

var (
	// ErrWalkerExhausted indicates a page fetch kept failing after all retries
	ErrWalkerExhausted = errors.New("sync: page fetch retries exhausted")

	// ErrSessionNotAcquired indicates a cart operation before GetSid succeeded
	ErrSessionNotAcquired = errors.New("sync: cart session not acquired")
	// ErrInvalidTransition indicates a cart session state transition out of order
	ErrInvalidTransition = errors.New("sync: invalid cart session transition")
	// ErrSessionTerminal indicates the cart session already reached a terminal state
	ErrSessionTerminal = errors.New("sync: cart session already terminal")
	// ErrNoResolvableLines indicates an order where no line item SKU resolved
	ErrNoResolvableLines = errors.New("sync: no resolvable line items")

	// ErrPlatformUnavailable indicates the remote platform could not be reached
	ErrPlatformUnavailable = errors.New("sync: platform temporarily unavailable")
	// ErrPlatformRequestFailed indicates the remote platform rejected the request
	ErrPlatformRequestFailed = errors.New("sync: platform request failed")
	// ErrPlatformInvalidResponse indicates an unparsable remote payload
	ErrPlatformInvalidResponse = errors.New("sync: invalid platform response")
	// ErrNoLocation indicates the storefront exposes no fulfillment location
	ErrNoLocation = errors.New("sync: no fulfillment location available")
)
