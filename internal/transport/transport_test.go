// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

// pipeConn is an in-memory Conn driven by a test acting as the server.
type pipeConn struct {
	toClient   chan []byte
	fromClient chan []byte
	closed     chan struct{}
	closeOnce  sync.Once
}

func newPipeConn() *pipeConn {
	return &pipeConn{
		toClient:   make(chan []byte, 32),
		fromClient: make(chan []byte, 32),
		closed:     make(chan struct{}),
	}
}

func (c *pipeConn) ReadMessage() ([]byte, error) {
	select {
	case data := <-c.toClient:
		return data, nil
	case <-c.closed:
		return nil, io.ErrClosedPipe
	}
}

func (c *pipeConn) WriteMessage(data []byte) error {
	select {
	case c.fromClient <- data:
		return nil
	case <-c.closed:
		return io.ErrClosedPipe
	}
}

func (c *pipeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// serverSend pushes a frame to the client side.
func (c *pipeConn) serverSend(t *testing.T, topic string, payload any) {
	t.Helper()
	f, err := models.NewFrame(topic, payload)
	require.NoError(t, err)
	data, err := json.Marshal(f)
	require.NoError(t, err)
	select {
	case c.toClient <- data:
	case <-time.After(time.Second):
		t.Fatal("server send timed out")
	}
}

// serverRecv reads the next frame the client wrote.
func (c *pipeConn) serverRecv(t *testing.T) models.Frame {
	t.Helper()
	select {
	case data := <-c.fromClient:
		var f models.Frame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	case <-time.After(time.Second):
		t.Fatal("server recv timed out")
		return models.Frame{}
	}
}

// acceptAuth consumes the client's auth frame and confirms it.
func (c *pipeConn) acceptAuth(t *testing.T) {
	t.Helper()
	f := c.serverRecv(t)
	require.Equal(t, models.TopicAuth, f.Type)
	c.serverSend(t, models.TopicAuthSuccess, nil)
}

// scriptDialer hands out pre-scripted dial results in order; once the script
// is exhausted it blocks until the transport closes.
type scriptDialer struct {
	mu      sync.Mutex
	results []dialResult
	dials   int
}

type dialResult struct {
	conn *pipeConn
	err  error
}

func (d *scriptDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if len(d.results) == 0 {
		return nil, errors.New("no more scripted connections")
	}
	res := d.results[0]
	d.results = d.results[1:]
	if res.err != nil {
		return nil, res.err
	}
	return res.conn, nil
}

func (d *scriptDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func testPushConfig() config.Push {
	return config.Push{
		URL:               "ws://test/ws",
		HeartbeatInterval: time.Hour, // heartbeat inert unless a test shortens it
		HeartbeatMisses:   5,
		BackoffBase:       time.Millisecond,
		BackoffCap:        4 * time.Millisecond,
		MaxAttempts:       8,
		QueueSize:         4,
	}
}

func newTestTransport(t *testing.T, cfg config.Push, d Dialer) (*Transport, *Router) {
	t.Helper()
	r := NewRouter(logger.Nop())
	tr := NewTransport(cfg, func() string { return "test-token" }, r, logger.Nop(), WithDialer(d))
	t.Cleanup(func() { _ = tr.Close() })
	return tr, r
}

// collectTopics records dispatched topics through a wildcard subscription.
func collectTopics(r *Router) (func() []string, chan string) {
	ch := make(chan string, 64)
	r.Subscribe(models.TopicWildcard, func(f models.Frame) { ch <- f.Type })
	snapshot := func() []string {
		var out []string
		for {
			select {
			case topic := <-ch:
				out = append(out, topic)
			default:
				return out
			}
		}
	}
	return snapshot, ch
}

func waitTopic(t *testing.T, ch chan string, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

// ── connect ──────────────────────────────────────────────────────────────────

func TestConnect_ReachesReady(t *testing.T) {
	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, r := newTestTransport(t, testPushConfig(), d)
	_, topics := collectTopics(r)

	go conn.acceptAuth(t)

	require.NoError(t, tr.Connect(context.Background()))
	assert.Equal(t, Ready, tr.State())
	assert.True(t, tr.Connected())

	waitTopic(t, topics, models.TopicAuthSuccess)
	waitTopic(t, topics, models.TopicConnected)
}

func TestConnect_Idempotent(t *testing.T) {
	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, _ := newTestTransport(t, testPushConfig(), d)

	go conn.acceptAuth(t)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tr.Connect(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, d.dialCount(), "concurrent Connect calls must share one attempt")

	// Connect on an already ready transport is a no-op.
	require.NoError(t, tr.Connect(context.Background()))
	assert.Equal(t, 1, d.dialCount())
}

func TestConnect_RetryBudgetExhausted(t *testing.T) {
	cfg := testPushConfig()
	cfg.MaxAttempts = 3
	d := &scriptDialer{results: []dialResult{
		{err: errors.New("refused")},
		{err: errors.New("refused")},
		{err: errors.New("refused")},
	}}
	tr, _ := newTestTransport(t, cfg, d)

	err := tr.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryBudgetExhausted)
	assert.Equal(t, 3, d.dialCount())
	assert.Equal(t, Disconnected, tr.State())
}

func TestConnect_AuthRejectionIsTerminal(t *testing.T) {
	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, r := newTestTransport(t, testPushConfig(), d)
	_, topics := collectTopics(r)

	go func() {
		f := conn.serverRecv(t)
		if f.Type == models.TopicAuth {
			conn.serverSend(t, models.TopicAuthError, map[string]string{"message": "token expired"})
		}
	}()

	err := tr.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRejected)
	assert.Equal(t, Disconnected, tr.State())

	// Surfaced once via the wildcard topic, and no reconnect follows.
	waitTopic(t, topics, models.TopicAuthError)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, d.dialCount())
}

func TestConnect_AfterClose(t *testing.T) {
	tr, _ := newTestTransport(t, testPushConfig(), &scriptDialer{})
	require.NoError(t, tr.Close())
	assert.ErrorIs(t, tr.Connect(context.Background()), ErrClosed)
}

// ── send and queue ───────────────────────────────────────────────────────────

func TestSend_BuffersUntilReadyAndFlushesFIFO(t *testing.T) {
	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, _ := newTestTransport(t, testPushConfig(), d)

	require.NoError(t, tr.Send("subscribe", map[string]string{"topic": "job_update"}))
	require.NoError(t, tr.Send("subscribe", map[string]string{"topic": "node_update"}))

	go conn.acceptAuth(t)
	require.NoError(t, tr.Connect(context.Background()))

	first := conn.serverRecv(t)
	second := conn.serverRecv(t)
	assert.Equal(t, "subscribe", first.Type)
	assert.Contains(t, string(first.Payload), "job_update")
	assert.Contains(t, string(second.Payload), "node_update")
}

func TestSend_QueueOverflowDropsOldest(t *testing.T) {
	cfg := testPushConfig()
	cfg.QueueSize = 2
	tr, _ := newTestTransport(t, cfg, &scriptDialer{})

	require.NoError(t, tr.Send("a", nil))
	require.NoError(t, tr.Send("b", nil))
	assert.ErrorIs(t, tr.Send("c", nil), ErrQueueOverflow)
}

// ── reconnect ────────────────────────────────────────────────────────────────

func TestReconnect_AfterDrop(t *testing.T) {
	first := newPipeConn()
	second := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: first}, {conn: second}}}
	tr, r := newTestTransport(t, testPushConfig(), d)
	_, topics := collectTopics(r)

	go first.acceptAuth(t)
	require.NoError(t, tr.Connect(context.Background()))
	waitTopic(t, topics, models.TopicConnected)

	go second.acceptAuth(t)
	_ = first.Close() // unexpected drop

	waitTopic(t, topics, models.TopicDisconnected)
	waitTopic(t, topics, models.TopicConnected)
	assert.Equal(t, 2, d.dialCount())
}

func TestReconnect_HeartbeatMissForcesCycle(t *testing.T) {
	cfg := testPushConfig()
	cfg.HeartbeatInterval = 2 * time.Millisecond
	cfg.HeartbeatMisses = 3

	first := newPipeConn()
	second := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: first}, {conn: second}}}
	tr, r := newTestTransport(t, cfg, d)
	_, topics := collectTopics(r)

	go first.acceptAuth(t)
	require.NoError(t, tr.Connect(context.Background()))

	// Swallow pings without answering; the miss threshold must force a
	// reconnect even though the conn looks open.
	go func() {
		for {
			select {
			case <-first.fromClient:
			case <-first.closed:
				return
			}
		}
	}()
	go second.acceptAuth(t)

	waitTopic(t, topics, models.TopicDisconnected)
	waitTopic(t, topics, models.TopicConnected)
}

func TestHeartbeat_PongResetsMissCounter(t *testing.T) {
	cfg := testPushConfig()
	cfg.HeartbeatInterval = 2 * time.Millisecond
	cfg.HeartbeatMisses = 2

	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, _ := newTestTransport(t, cfg, d)

	go conn.acceptAuth(t)
	require.NoError(t, tr.Connect(context.Background()))

	// Answer every ping; the connection must stay Ready.
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.After(50 * time.Millisecond)
		for {
			select {
			case data := <-conn.fromClient:
				var f models.Frame
				if json.Unmarshal(data, &f) == nil && f.Type == models.TopicPing {
					conn.serverSend(t, models.TopicPong, nil)
				}
			case <-deadline:
				return
			}
		}
	}()
	<-done

	assert.Equal(t, Ready, tr.State())
}

// ── backoff ──────────────────────────────────────────────────────────────────

func TestBackoff_NonDecreasingUpToCap(t *testing.T) {
	tr, _ := newTestTransport(t, config.Push{
		URL:             "ws://test/ws",
		BackoffBase:     100 * time.Millisecond,
		BackoffCap:      2 * time.Second,
		HeartbeatMisses: 5,
		QueueSize:       4,
	}, &scriptDialer{})

	base := 100 * time.Millisecond
	cap := 2 * time.Second
	prevFloor := time.Duration(0)
	for attempt := 0; attempt < 12; attempt++ {
		got := tr.backoff(attempt)

		floor := base << uint(attempt)
		if floor > cap || floor <= 0 {
			floor = cap
		}
		assert.GreaterOrEqual(t, got, floor, "attempt %d", attempt)
		assert.Less(t, got, floor+base, "attempt %d", attempt)
		assert.GreaterOrEqual(t, floor, prevFloor, "floor must be non-decreasing")
		prevFloor = floor
	}
}

// ── dispatch path ────────────────────────────────────────────────────────────

func TestServe_DispatchesInReceiptOrder(t *testing.T) {
	conn := newPipeConn()
	d := &scriptDialer{results: []dialResult{{conn: conn}}}
	tr, r := newTestTransport(t, testPushConfig(), d)

	var mu sync.Mutex
	var got []string
	doneCh := make(chan struct{})
	r.Subscribe(models.TopicJobUpdate, func(f models.Frame) {
		mu.Lock()
		got = append(got, string(f.Payload))
		if len(got) == 3 {
			close(doneCh)
		}
		mu.Unlock()
	})

	go conn.acceptAuth(t)
	require.NoError(t, tr.Connect(context.Background()))

	conn.serverSend(t, models.TopicJobUpdate, map[string]string{"seq": "1"})
	conn.serverSend(t, models.TopicJobUpdate, map[string]string{"seq": "2"})
	conn.serverSend(t, models.TopicJobUpdate, map[string]string{"seq": "3"})

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatches")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Contains(t, got[0], `"seq":"1"`)
	assert.Contains(t, got[1], `"seq":"2"`)
	assert.Contains(t, got[2], `"seq":"3"`)
}
