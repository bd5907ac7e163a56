package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAPIConfigs indicates invalid pull API settings
	// (for example, a missing base URL).
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")

	// ErrInvalidPushConfigs indicates invalid push channel settings
	// (for example, a missing websocket URL or a backoff base above
	// the cap).
	ErrInvalidPushConfigs = errors.New("invalid push configuration")
)
