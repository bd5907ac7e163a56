package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

// TokenSource supplies the current bearer token for the handshake. It is a
// function so that a token refreshed after an auth failure is picked up by
// the next connection attempt without rebuilding the transport.
type TokenSource func() string

// Option configures a Transport.
type Option func(*Transport)

// WithDialer substitutes the websocket dialer; used by tests to run the
// transport over an in-memory connection.
func WithDialer(d Dialer) Option {
	return func(t *Transport) { t.dialer = d }
}

// Transport maintains the single push channel connection shared by all sync
// hooks. At most one live socket exists per session; all state transitions
// happen on the transport's own run goroutine.
type Transport struct {
	cfg    config.Push
	token  TokenSource
	dialer Dialer
	router *Router
	logger *logger.Logger

	mu      sync.Mutex
	state   State
	conn    Conn
	queue   *frameQueue
	running bool
	closed  bool
	ready   chan struct{}
	failed  chan struct{}
	failErr error

	writeMu sync.Mutex
	missed  atomic.Int32

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewTransport constructs a Transport for the configured push endpoint. The
// transport is idle until Connect is called.
func NewTransport(cfg config.Push, token TokenSource, router *Router, log *logger.Logger, opts ...Option) *Transport {
	t := &Transport{
		cfg:     cfg,
		token:   token,
		dialer:  gorillaDialer{},
		router:  router,
		logger:  log,
		queue:   newFrameQueue(cfg.QueueSize),
		ready:   make(chan struct{}),
		failed:  make(chan struct{}),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Router returns the subscription router fed by this transport.
func (t *Transport) Router() *Router {
	return t.router
}

// State returns the current connection state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Connected reports whether the channel is ready for frames.
func (t *Transport) Connected() bool {
	return t.State() == Ready
}

// Connect brings the push channel up. It is idempotent: calling it while a
// connection attempt is already in flight joins that attempt instead of
// starting a second one. Connect returns nil once the connection reaches
// Ready, or an error when the retry budget is exhausted, the server rejects
// the credentials, or ctx is cancelled. After a terminal failure a new
// Connect call starts a fresh cycle (with a fresh token from the source).
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.state == Ready {
		t.mu.Unlock()
		return nil
	}
	if !t.running {
		// A previous terminal failure leaves a closed failed channel
		// behind; restart with fresh signalling.
		if t.failErr != nil {
			t.failErr = nil
			t.failed = make(chan struct{})
		}
		t.running = true
		t.wg.Add(1)
		go t.run()
	}
	ready := t.ready
	failed := t.failed
	t.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-failed:
		t.mu.Lock()
		err := t.failErr
		t.mu.Unlock()
		return err
	case <-t.closeCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send enqueues one frame. When the channel is not ready, the frame is
// buffered in the bounded queue and flushed in FIFO order on the next Ready
// transition; buffering that evicted the oldest frame returns
// [ErrQueueOverflow] while still accepting the new frame. Send never blocks
// on the network state.
func (t *Transport) Send(topic string, payload any) error {
	f, err := models.NewFrame(topic, payload)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.state != Ready {
		dropped := t.queue.push(f)
		t.mu.Unlock()
		if dropped {
			t.logger.Warn().Str("topic", topic).Msg("outbound queue overflow")
			return ErrQueueOverflow
		}
		return nil
	}
	conn := t.conn
	t.mu.Unlock()

	return t.writeFrame(conn, f)
}

// Close tears the transport down: the socket is closed, the outbound queue
// is cleared, every router subscription is released, and reconnection stops
// for good. Close blocks until the run goroutine has exited.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	conn := t.conn
	t.conn = nil
	t.queue = newFrameQueue(t.cfg.QueueSize)
	t.state = Disconnected
	t.mu.Unlock()

	close(t.closeCh)
	if conn != nil {
		_ = conn.Close()
	}
	t.wg.Wait()
	t.router.releaseAll()
	return nil
}

// run is the connection loop: dial, handshake, serve, reconnect. It exits on
// Close or on a terminal failure.
func (t *Transport) run() {
	defer t.wg.Done()

	attempt := 0
	delayNext := false

	for {
		if t.isClosed() {
			return
		}
		if delayNext {
			if !t.sleep(t.backoff(attempt)) {
				return
			}
		}

		t.setState(Connecting)
		conn, err := t.dialer.DialContext(context.Background(), t.cfg.URL)
		if err != nil {
			if errors.Is(err, ErrAuthRejected) {
				t.router.Dispatch(models.Frame{Type: models.TopicAuthError})
				t.fail(err)
				return
			}
			attempt++
			delayNext = true
			t.logger.Warn().Err(err).Int("attempt", attempt).Msg("push channel dial failed")
			if t.cfg.MaxAttempts > 0 && attempt >= t.cfg.MaxAttempts {
				t.fail(fmt.Errorf("%w: %v", ErrRetryBudgetExhausted, err))
				return
			}
			continue
		}

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			_ = conn.Close()
			return
		}
		t.conn = conn
		t.state = Connected
		t.mu.Unlock()

		if err = t.handshake(conn); err != nil {
			_ = conn.Close()
			t.clearConn()
			if errors.Is(err, ErrAuthRejected) {
				t.fail(err)
				return
			}
			attempt++
			delayNext = true
			t.logger.Warn().Err(err).Int("attempt", attempt).Msg("push channel handshake failed")
			if t.cfg.MaxAttempts > 0 && attempt >= t.cfg.MaxAttempts {
				t.fail(fmt.Errorf("%w: %v", ErrRetryBudgetExhausted, err))
				return
			}
			continue
		}

		// Ready: reset the retry budget, flush buffered frames in FIFO
		// order, then announce the connection to wildcard subscribers.
		t.mu.Lock()
		t.state = Ready
		attempt = 0
		pending := t.queue.drain()
		ready := t.ready
		t.mu.Unlock()
		close(ready)

		for _, f := range pending {
			if err = t.writeFrame(conn, f); err != nil {
				t.logger.Warn().Err(err).Str("topic", f.Type).Msg("flush of buffered frame failed")
				break
			}
		}
		t.router.Dispatch(models.Frame{Type: models.TopicConnected})
		t.logger.Info().Msg("push channel ready")

		readErr := t.serve(conn)
		_ = conn.Close()

		t.mu.Lock()
		t.conn = nil
		t.ready = make(chan struct{})
		closed := t.closed
		if !closed {
			t.state = Disconnected
		}
		t.mu.Unlock()

		t.router.Dispatch(models.Frame{Type: models.TopicDisconnected})
		if closed {
			return
		}
		t.logger.Warn().Err(readErr).Msg("push channel dropped, reconnecting")
		delayNext = true
	}
}

// handshake sends the auth frame and reads until the server answers. Frames
// the server pushes before the answer are dispatched as usual.
func (t *Transport) handshake(conn Conn) error {
	t.setState(Authenticating)

	auth, err := models.NewFrame(models.TopicAuth, map[string]string{"token": t.token()})
	if err != nil {
		return err
	}
	if err = t.writeFrame(conn, auth); err != nil {
		return fmt.Errorf("send auth frame: %w", err)
	}

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read handshake reply: %w", err)
		}

		var f models.Frame
		if err = json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("decode handshake reply: %w", err)
		}

		switch f.Type {
		case models.TopicAuthSuccess:
			t.router.Dispatch(f)
			return nil
		case models.TopicAuthError:
			t.router.Dispatch(f)
			return fmt.Errorf("%w: %s", ErrAuthRejected, string(f.Payload))
		default:
			t.router.Dispatch(f)
		}
	}
}

// serve pumps inbound frames into the router until the connection drops.
// A heartbeat goroutine force-closes the socket when too many pings go
// unacknowledged, which unblocks the read and lands back here.
func (t *Transport) serve(conn Conn) error {
	t.missed.Store(0)
	hbDone := make(chan struct{})
	defer close(hbDone)
	go t.heartbeat(conn, hbDone)

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var f models.Frame
		if err = json.Unmarshal(data, &f); err != nil {
			t.logger.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		if f.Type == models.TopicPong {
			t.missed.Store(0)
			continue
		}

		t.router.Dispatch(f)
	}
}

// heartbeat sends a ping on a fixed interval while the connection serves.
// Reaching the miss threshold closes the socket: a half-open connection
// looks alive to the OS but never acknowledges, and this is the only way to
// find out.
func (t *Transport) heartbeat(conn Conn, done <-chan struct{}) {
	ticker := time.NewTicker(t.cfg.HeartbeatInterval)
	defer ticker.Stop()

	ping, _ := models.NewFrame(models.TopicPing, nil)

	for {
		select {
		case <-done:
			return
		case <-t.closeCh:
			return
		case <-ticker.C:
			if int(t.missed.Load()) >= t.cfg.HeartbeatMisses {
				t.logger.Warn().
					Int32("missed", t.missed.Load()).
					Msg("heartbeat miss threshold reached, forcing reconnect")
				_ = conn.Close()
				return
			}
			t.missed.Add(1)
			if err := t.writeFrame(conn, ping); err != nil {
				return
			}
		}
	}
}

func (t *Transport) writeFrame(conn Conn, f models.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return conn.WriteMessage(data)
}

// backoff returns the delay before attempt n (0-based):
// min(base<<n, cap) plus jitter in [0, base).
func (t *Transport) backoff(attempt int) time.Duration {
	base := t.cfg.BackoffBase
	delay := base << uint(attempt)
	if delay > t.cfg.BackoffCap || delay <= 0 {
		delay = t.cfg.BackoffCap
	}
	return delay + time.Duration(rand.Int63n(int64(base)))
}

// sleep waits d, aborting early on Close. Reports whether the transport is
// still alive.
func (t *Transport) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-t.closeCh:
		return false
	}
}

func (t *Transport) fail(err error) {
	t.mu.Lock()
	t.failErr = err
	t.state = Disconnected
	t.running = false
	failed := t.failed
	t.mu.Unlock()

	t.logger.Error().Err(err).Msg("push channel terminal failure")
	close(failed)
}

func (t *Transport) setState(s State) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *Transport) clearConn() {
	t.mu.Lock()
	t.conn = nil
	t.mu.Unlock()
}

func (t *Transport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
