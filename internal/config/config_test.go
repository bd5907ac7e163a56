// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── env ──────────────────────────────────────────────────────────────────────

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("CONSOLE_API_ADDRESS", "https://api.deparrow.io")
	t.Setenv("CONSOLE_API_TOKEN", "tok-123")
	t.Setenv("CONSOLE_PUSH_HEARTBEAT_INTERVAL", "7s")
	t.Setenv("CONSOLE_CACHE_STALE_TIME", "45s")

	cfg := &ClientConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://api.deparrow.io", cfg.API.BaseURL)
	assert.Equal(t, "tok-123", cfg.API.Token)
	assert.Equal(t, 7*time.Second, cfg.Push.HeartbeatInterval)
	assert.Equal(t, 45*time.Second, cfg.Cache.StaleTime)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("CONSOLE_PUSH_BACKOFF_BASE", "not-a-duration")

	cfg := &ClientConfig{}
	assert.Error(t, parseEnv(cfg))
}

// ── json ─────────────────────────────────────────────────────────────────────

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"api": {"address": "http://localhost:8080", "request_timeout": "10s"},
		"push": {"url": "ws://localhost:8080/ws", "heartbeat_misses": 3},
		"storage": {"snapshot_path": "/tmp/snapshots.db", "flush_interval": "1m"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "ws://localhost:8080/ws", cfg.Push.URL)
	assert.Equal(t, 3, cfg.Push.HeartbeatMisses)
	assert.Equal(t, "/tmp/snapshots.db", cfg.Storage.SnapshotPath)
	assert.Equal(t, time.Minute, cfg.Storage.FlushInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

// ── defaults and validation ──────────────────────────────────────────────────

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &ClientConfig{API: API{BaseURL: "https://api.deparrow.io"}}
	cfg.applyDefaults()

	assert.Equal(t, "wss://api.deparrow.io/ws", cfg.Push.URL)
	assert.Equal(t, 15*time.Second, cfg.Push.HeartbeatInterval)
	assert.Equal(t, 5, cfg.Push.HeartbeatMisses)
	assert.Equal(t, 500*time.Millisecond, cfg.Push.BackoffBase)
	assert.Equal(t, 30*time.Second, cfg.Push.BackoffCap)
	assert.Equal(t, 8, cfg.Push.MaxAttempts)
	assert.Equal(t, 64, cfg.Push.QueueSize)
	assert.Equal(t, ":memory:", cfg.Storage.SnapshotPath)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &ClientConfig{
		API:  API{BaseURL: "http://localhost:8080"},
		Push: Push{URL: "ws://push.example/ws", HeartbeatMisses: 2},
	}
	cfg.applyDefaults()

	assert.Equal(t, "ws://push.example/ws", cfg.Push.URL)
	assert.Equal(t, 2, cfg.Push.HeartbeatMisses)
}

func TestValidate_MissingBaseURL(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()

	assert.ErrorIs(t, cfg.validate(), ErrInvalidAPIConfigs)
}

func TestValidate_BackoffBaseAboveCap(t *testing.T) {
	cfg := &ClientConfig{
		API:  API{BaseURL: "http://localhost:8080"},
		Push: Push{BackoffBase: time.Minute, BackoffCap: time.Second},
	}
	cfg.applyDefaults()

	assert.ErrorIs(t, cfg.validate(), ErrInvalidPushConfigs)
}

func TestDerivePushURL(t *testing.T) {
	assert.Equal(t, "wss://api.deparrow.io/ws", derivePushURL("https://api.deparrow.io/"))
	assert.Equal(t, "ws://localhost:8080/ws", derivePushURL("http://localhost:8080"))
}
