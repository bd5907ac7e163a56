package transport

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

// Handler consumes one inbound frame. Handlers run synchronously on the
// transport's read goroutine; long work belongs elsewhere.
type Handler func(f models.Frame)

// Subscription is the release handle returned by Subscribe. The subscriber
// owns the release obligation: a hook that registered interest must call
// Unsubscribe on teardown, or its callback keeps firing into a dead closure.
type Subscription struct {
	id     uuid.UUID
	topic  string
	fn     Handler
	active atomic.Bool
	router *Router
}

// Unsubscribe removes the subscription. It is effective immediately: once it
// returns (even when called from inside the callback itself), the callback
// receives zero further dispatches. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.router.remove(s)
}

// DispatchFault reports a panic recovered from a subscriber callback. One
// failing subscriber must not break dispatch to the others, so faults are
// reported out-of-band instead of propagating.
type DispatchFault struct {
	Topic string
	Err   error
}

// Router dispatches inbound frames to registered subscribers. Registration
// works in any connection state; dispatch simply begins once frames flow.
type Router struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription

	faults chan DispatchFault
	logger *logger.Logger
}

// NewRouter constructs an empty router. Dispatch faults beyond the buffer of
// the Faults channel are logged and dropped.
func NewRouter(log *logger.Logger) *Router {
	return &Router{
		subs:   make(map[string][]*Subscription),
		faults: make(chan DispatchFault, 16),
		logger: log,
	}
}

// Subscribe registers fn for topic and returns the release handle. Use
// [models.TopicWildcard] to receive every inbound frame, lifecycle topics
// included. Subscribers of the same topic are dispatched in registration
// order.
func (r *Router) Subscribe(topic string, fn Handler) *Subscription {
	sub := &Subscription{
		id:     uuid.New(),
		topic:  topic,
		fn:     fn,
		router: r,
	}
	sub.active.Store(true)

	r.mu.Lock()
	r.subs[topic] = append(r.subs[topic], sub)
	r.mu.Unlock()

	return sub
}

// Faults exposes recovered subscriber panics for observability.
func (r *Router) Faults() <-chan DispatchFault {
	return r.faults
}

// Dispatch invokes every callback registered for f.Type and every wildcard
// callback, synchronously and in registration order. The router performs no
// reordering or coalescing: events for the same entity reach subscribers in
// the order the transport received them.
func (r *Router) Dispatch(f models.Frame) {
	r.mu.RLock()
	exact := append([]*Subscription(nil), r.subs[f.Type]...)
	wild := append([]*Subscription(nil), r.subs[models.TopicWildcard]...)
	r.mu.RUnlock()

	for _, sub := range exact {
		r.invoke(sub, f)
	}
	for _, sub := range wild {
		r.invoke(sub, f)
	}
}

func (r *Router) invoke(sub *Subscription, f models.Frame) {
	// Re-check at invocation time: a callback earlier in this dispatch may
	// have unsubscribed this one.
	if !sub.active.Load() {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			fault := DispatchFault{Topic: f.Type, Err: fmt.Errorf("subscriber panic: %v", rec)}
			r.logger.Error().
				Str("topic", f.Type).
				Str("subscription", sub.id.String()).
				Msgf("recovered subscriber panic: %v", rec)
			select {
			case r.faults <- fault:
			default:
			}
		}
	}()

	sub.fn(f)
}

func (r *Router) remove(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[sub.topic]
	for i, s := range list {
		if s.id == sub.id {
			r.subs[sub.topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.topic]) == 0 {
		delete(r.subs, sub.topic)
	}
}

// releaseAll unsubscribes everything; used by the transport teardown path so
// a closed session cannot leak callbacks.
func (r *Router) releaseAll() {
	r.mu.Lock()
	var all []*Subscription
	for _, list := range r.subs {
		all = append(all, list...)
	}
	r.subs = make(map[string][]*Subscription)
	r.mu.Unlock()

	for _, sub := range all {
		sub.active.Store(false)
	}
}
