package transport

import "errors"

var (
	// ErrClosed is returned by Connect and Send after an explicit
	// Close; a closed transport never reconnects.
	ErrClosed = errors.New("transport closed")

	// ErrAuthRejected is the terminal failure returned by Connect when
	// the server rejects the handshake credentials.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrRetryBudgetExhausted is returned by Connect when every attempt
	// of the configured retry budget has failed.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

	// ErrQueueOverflow is the warning-grade error returned by Send when
	// buffering a frame dropped the oldest queued frame. The new frame
	// was accepted.
	ErrQueueOverflow = errors.New("outbound queue overflow, oldest frame dropped")
)
