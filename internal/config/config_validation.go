// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"time"
)

// applyDefaults fills every zero-valued tunable with its documented default.
// Defaults live here rather than in the transport or cache so that a single
// place answers "what does this knob do when unset".
func (cfg *ClientConfig) applyDefaults() {
	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = 30 * time.Second
	}
	if cfg.Push.URL == "" && cfg.API.BaseURL != "" {
		cfg.Push.URL = derivePushURL(cfg.API.BaseURL)
	}
	if cfg.Push.HeartbeatInterval == 0 {
		cfg.Push.HeartbeatInterval = 15 * time.Second
	}
	if cfg.Push.HeartbeatMisses == 0 {
		cfg.Push.HeartbeatMisses = 5
	}
	if cfg.Push.BackoffBase == 0 {
		cfg.Push.BackoffBase = 500 * time.Millisecond
	}
	if cfg.Push.BackoffCap == 0 {
		cfg.Push.BackoffCap = 30 * time.Second
	}
	if cfg.Push.MaxAttempts == 0 {
		cfg.Push.MaxAttempts = 8
	}
	if cfg.Push.QueueSize == 0 {
		cfg.Push.QueueSize = 64
	}
	if cfg.Cache.StaleTime == 0 {
		cfg.Cache.StaleTime = 30 * time.Second
	}
	if cfg.Storage.SnapshotPath == "" {
		cfg.Storage.SnapshotPath = ":memory:"
	}
	if cfg.Storage.FlushInterval == 0 {
		cfg.Storage.FlushInterval = 30 * time.Second
	}
}

// derivePushURL turns an API base URL into the websocket endpoint:
// https -> wss, http -> ws, path /ws appended.
func derivePushURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}

// validate checks that the final merged [ClientConfig] satisfies the
// invariants the client cannot start without.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.API.BaseURL == "" {
		return ErrInvalidAPIConfigs
	}

	if cfg.Push.URL == "" {
		return ErrInvalidPushConfigs
	}

	if cfg.Push.BackoffBase > cfg.Push.BackoffCap {
		return ErrInvalidPushConfigs
	}

	return nil
}
