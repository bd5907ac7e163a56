// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/internal/mock"
	"github.com/deparrow/console/internal/notify"
	"github.com/deparrow/console/internal/transport"
	"github.com/deparrow/console/models"
)

// newTestSession builds a session around a mocked adapter. The transport is
// real but never connected; push frames are injected straight through the
// router.
func newTestSession(t *testing.T, ctrl *gomock.Controller) (*Session, *mock.MockServerAdapter) {
	t.Helper()
	log := logger.Nop()
	srv := mock.NewMockServerAdapter(ctrl)
	router := transport.NewRouter(log)
	tr := transport.NewTransport(config.Push{
		URL:             "ws://unused/ws",
		HeartbeatMisses: 5,
		BackoffBase:     time.Millisecond,
		BackoffCap:      time.Millisecond,
		QueueSize:       4,
	}, func() string { return "" }, router, log)

	s := &Session{
		cfg: &config.ClientConfig{
			Cache: config.Cache{StaleTime: time.Hour},
		},
		adapter:   srv,
		transport: tr,
		cache:     cache.New(log),
		notifier:  notify.New(log),
		logger:    log,
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, srv
}

// push injects a frame as if it arrived on the push channel.
func push(t *testing.T, s *Session, topic string, payload any) {
	t.Helper()
	f, err := models.NewFrame(topic, payload)
	require.NoError(t, err)
	s.transport.Router().Dispatch(f)
}
