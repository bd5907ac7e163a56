package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/deparrow/console/internal/adapter"
	"github.com/deparrow/console/internal/app"
	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/internal/notify"
	"github.com/deparrow/console/internal/transport"
	"github.com/deparrow/console/models"
)

// Session owns the shared sync collaborators for one authenticated user: the
// pull adapter, the single push transport, the query cache, and the
// notifier. Hooks are created from it; Close is the one teardown path and
// transitively releases every router subscription.
type Session struct {
	cfg       *config.ClientConfig
	adapter   adapter.ServerAdapter
	transport *transport.Transport
	cache     *cache.Cache
	notifier  *notify.Notifier
	logger    *logger.Logger
	closed    atomic.Bool
}

// NewSession wires a session from config. The push connection is not opened
// until Connect.
func NewSession(cfg *config.ClientConfig, log *logger.Logger) (*Session, error) {
	srv, err := adapter.NewHTTPServerAdapter(cfg.API, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}
	if cfg.API.Token != "" {
		if err = srv.SetToken(cfg.API.Token); err != nil {
			return nil, fmt.Errorf("set api token: %w", err)
		}
	}

	router := transport.NewRouter(log)
	tr := transport.NewTransport(cfg.Push, srv.Token, router, log)

	return &Session{
		cfg:       cfg,
		adapter:   srv,
		transport: tr,
		cache:     cache.New(log),
		notifier:  notify.New(log),
		logger:    log.GetChildLogger("session"),
	}, nil
}

// Connect opens the push channel, blocking until the transport is ready or
// terminally failed. A terminal auth rejection is also surfaced as a
// notification prompting re-authentication.
func (s *Session) Connect(ctx context.Context) error {
	if exp := s.adapter.TokenExpiry(); !exp.IsZero() && time.Until(exp) < 5*time.Minute {
		s.notifier.Notify(notify.Warning, "authentication", "session token expires soon")
	}

	err := s.transport.Connect(ctx)
	if err != nil {
		if errors.Is(err, transport.ErrAuthRejected) {
			s.notifier.Notify(notify.Error, "authentication", app.MsgSessionExpired)
		}
		return err
	}
	return nil
}

// Connected reports whether the push channel is ready.
func (s *Session) Connected() bool {
	return s.transport.Connected()
}

// Subscribe registers a raw push subscription outside the standard hooks.
// The caller owns the returned handle's release obligation.
func (s *Session) Subscribe(topic string, fn transport.Handler) *transport.Subscription {
	return s.transport.Router().Subscribe(topic, fn)
}

// Send transmits a frame on the push channel, buffering while disconnected.
func (s *Session) Send(topic string, payload any) error {
	return s.transport.Send(topic, payload)
}

// Adapter exposes the pull API for callers outside the hooks, such as the
// snapshot store priming path.
func (s *Session) Adapter() adapter.ServerAdapter {
	return s.adapter
}

// Cache exposes the query cache for snapshot priming and persistence.
func (s *Session) Cache() *cache.Cache {
	return s.cache
}

// Notifications is the stream of one-shot user-visible notifications.
func (s *Session) Notifications() <-chan notify.Notification {
	return s.notifier.C()
}

// Faults surfaces subscriber panics isolated by the router.
func (s *Session) Faults() <-chan transport.DispatchFault {
	return s.transport.Router().Faults()
}

// Hook constructors.

func (s *Session) Jobs(opts models.ListOptions) *JobsHook           { return newJobsHook(s, opts) }
func (s *Session) Nodes(opts models.ListOptions) *NodesHook         { return newNodesHook(s, opts) }
func (s *Session) Providers(opts models.ListOptions) *ProvidersHook { return newProvidersHook(s, opts) }
func (s *Session) Wallet() *WalletHook                              { return newWalletHook(s) }
func (s *Session) Agent() *AgentHook                                { return newAgentHook(s) }
func (s *Session) System() *SystemHook                              { return newSystemHook(s) }

// Close tears the session down: the push channel drops, every router
// subscription is released, and the cache stops all refresh timers.
// Idempotent.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.transport.Close()
	s.cache.Close()
	s.logger.Info().Msg("session closed")
	return err
}

// defaultOptions are the cache options hooks use unless they need something
// tighter.
func (s *Session) defaultOptions() cache.Options {
	return cache.Options{
		StaleTime:       s.cfg.Cache.StaleTime,
		RefreshInterval: s.cfg.Cache.RefreshInterval,
	}
}
