// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the console
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// API holds the pull API address, bearer token and request timeout.
	API API `envPrefix:"API_"`

	// Push holds the push channel address and the reconnect, heartbeat
	// and outbound queue settings.
	Push Push `envPrefix:"PUSH_"`

	// Cache holds the default staleness budget and refresh interval for
	// query cache entries; individual hooks may override both.
	Cache Cache `envPrefix:"CACHE_"`

	// Storage holds the local snapshot store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONSOLE_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// API holds settings for the pull (request/response) side of the client.
type API struct {
	// BaseURL is the HTTP(S) address of the marketplace API
	// (e.g. "https://api.deparrow.io").
	// Env: CONSOLE_API_ADDRESS
	BaseURL string `env:"ADDRESS"`

	// Token is the bearer token used for every authenticated request and
	// for the push channel handshake.
	// Env: CONSOLE_API_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout is the maximum duration of a single pull request
	// (e.g. "30s").
	// Env: CONSOLE_API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Push holds settings for the push channel transport. All durations have
// documented defaults applied by validate; the server does not dictate them.
type Push struct {
	// URL is the websocket address of the push channel
	// (e.g. "wss://api.deparrow.io/ws"). When empty it is derived from
	// API.BaseURL by swapping the scheme and appending "/ws".
	// Env: CONSOLE_PUSH_URL
	URL string `env:"URL"`

	// HeartbeatInterval is the delay between ping frames while the
	// connection is ready. Default 15s.
	// Env: CONSOLE_PUSH_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`

	// HeartbeatMisses is the number of consecutive unacknowledged pings
	// that forces a reconnect cycle. Default 5.
	// Env: CONSOLE_PUSH_HEARTBEAT_MISSES
	HeartbeatMisses int `env:"HEARTBEAT_MISSES"`

	// BackoffBase is the first reconnect delay; it doubles per attempt.
	// Jitter in [0, BackoffBase) is added to every delay. Default 500ms.
	// Env: CONSOLE_PUSH_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the reconnect delay. Default 30s.
	// Env: CONSOLE_PUSH_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// MaxAttempts is the retry budget of a single Connect call; 0 means
	// retry forever. Default 8.
	// Env: CONSOLE_PUSH_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// QueueSize bounds the outbound frame buffer used while the
	// connection is not ready; overflow drops the oldest frame.
	// Default 64.
	// Env: CONSOLE_PUSH_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// Cache holds query cache defaults.
type Cache struct {
	// StaleTime is the default staleness budget of a cache entry.
	// Default 30s.
	// Env: CONSOLE_CACHE_STALE_TIME
	StaleTime time.Duration `env:"STALE_TIME"`

	// RefreshInterval is the default proactive reload interval for
	// entries with at least one active consumer; 0 disables proactive
	// refresh unless a hook asks for it.
	// Env: CONSOLE_CACHE_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Storage holds settings for the local snapshot store.
type Storage struct {
	// SnapshotPath is the sqlite file holding last-known query results;
	// ":memory:" keeps snapshots for the lifetime of the process only.
	// Env: CONSOLE_STORAGE_SNAPSHOT_PATH
	SnapshotPath string `env:"SNAPSHOT_PATH"`

	// FlushInterval is how often the snapshot worker persists dirty
	// cache entries. Default 30s.
	// Env: CONSOLE_STORAGE_FLUSH_INTERVAL
	FlushInterval time.Duration `env:"FLUSH_INTERVAL"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults documented on the field comments are applied after merging.
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
