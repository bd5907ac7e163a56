// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// DEparrow console.
//
// All Msg* constants are human-readable message strings that are surfaced in
// the dashboard status bar or log entries to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording throughout
// the client.
package app

const (
	// MsgSessionExpired is shown when the marketplace rejects the session
	// token during the push handshake or an API call. The user has to sign
	// in again; reconnecting will not help.
	MsgSessionExpired = "session expired, please sign in again"

	// MsgInsufficientCredits is shown when a job submission or transfer is
	// rejected because the wallet balance does not cover the cost.
	MsgInsufficientCredits = "insufficient credits"

	// MsgJobNotFound is shown when an operation targets a job ID the
	// marketplace does not know, typically after the job has been pruned.
	MsgJobNotFound = "job not found"

	// MsgConnectionLost is shown in the status bar while the push channel
	// is down and the client is cycling through reconnect attempts.
	MsgConnectionLost = "connection lost, reconnecting"

	// MsgMarketplaceUnavailable is shown when the marketplace API cannot be
	// reached at all and cached data is being served instead.
	MsgMarketplaceUnavailable = "marketplace unavailable, showing cached data"

	// MsgInvalidJobSpec is shown when a submission is rejected before
	// scheduling because the job spec fails validation.
	MsgInvalidJobSpec = "invalid job spec"

	// MsgAgentNotRunning is shown when a chat message is sent while the
	// placement agent is stopped.
	MsgAgentNotRunning = "agent is not running"
)
