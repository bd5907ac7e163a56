package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a API base URL (e.g. "https://api.deparrow.io")
//	-push push channel websocket URL
//	-token bearer token for the API and the push handshake
//	-request-timeout pull request timeout (e.g., "30s", "1m")
//	-heartbeat-interval ping interval while connected
//	-backoff-base first reconnect delay
//	-backoff-cap maximum reconnect delay
//	-snapshot snapshot sqlite file path
//	-c/-config json file path with configs
func ParseFlags() *ClientConfig {
	var apiAddress string
	var pushURL string
	var token string
	var requestTimeout time.Duration
	var heartbeatInterval time.Duration
	var backoffBase time.Duration
	var backoffCap time.Duration
	var snapshotPath string
	var jsonConfigPath string

	flag.StringVar(&apiAddress, "a", "", "API base URL")
	flag.StringVar(&pushURL, "push", "", "Push channel websocket URL")
	flag.StringVar(&token, "token", "", "Bearer token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Pull request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&heartbeatInterval, "heartbeat-interval", 0, "Heartbeat ping interval")
	flag.DurationVar(&backoffBase, "backoff-base", 0, "First reconnect delay")
	flag.DurationVar(&backoffCap, "backoff-cap", 0, "Maximum reconnect delay")
	flag.StringVar(&snapshotPath, "snapshot", "", "Snapshot sqlite file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &ClientConfig{
		API: API{
			BaseURL:        apiAddress,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Push: Push{
			URL:               pushURL,
			HeartbeatInterval: heartbeatInterval,
			BackoffBase:       backoffBase,
			BackoffCap:        backoffCap,
		},
		Storage: Storage{
			SnapshotPath: snapshotPath,
		},
		JSONFilePath: jsonConfigPath,
	}
}
