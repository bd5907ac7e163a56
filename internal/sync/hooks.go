package sync

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/deparrow/console/internal/transport"
	"github.com/deparrow/console/models"
)

// hookBase carries the lifecycle shared by every domain hook: the push
// subscriptions and retained cache keys acquired on Attach, released exactly
// once on Detach. The hook context is cancelled on Detach so blocked fetches
// initiated by the hook abort instead of delivering into a torn-down view.
type hookBase struct {
	session  *Session
	attached atomic.Bool
	subs     []*transport.Subscription
	retained []string

	ctx    context.Context
	cancel context.CancelFunc
}

func newHookBase(s *Session) hookBase {
	ctx, cancel := context.WithCancel(context.Background())
	return hookBase{session: s, ctx: ctx, cancel: cancel}
}

func (h *hookBase) subscribe(topic string, fn transport.Handler) {
	h.subs = append(h.subs, h.session.Subscribe(topic, fn))
}

func (h *hookBase) retain(key string) {
	h.session.cache.Retain(key, h.session.defaultOptions())
	h.retained = append(h.retained, key)
}

// detach releases subscriptions synchronously; a callback observes zero
// dispatches after this returns.
func (h *hookBase) detach() {
	if !h.attached.CompareAndSwap(true, false) {
		return
	}
	h.cancel()
	for _, sub := range h.subs {
		sub.Unsubscribe()
	}
	h.subs = nil
	for _, key := range h.retained {
		h.session.cache.Release(key)
	}
	h.retained = nil
}

// fetchCtx bounds a read by both the caller's context and the hook
// lifetime.
func (h *hookBase) fetchCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(h.ctx, cancel)
	return merged, func() { stop(); cancel() }
}

// decodeEvent unwraps a frame into its tagged event, logging rather than
// dropping anything unrecognised.
func (h *hookBase) decodeEvent(f models.Frame) (models.Event, bool) {
	ev, err := models.DecodeEvent(f)
	if err != nil {
		h.session.logger.Warn().Err(err).Str("topic", f.Type).Msg("undecodable push event")
		return ev, false
	}
	if ev.Unknown != nil {
		h.session.logger.Debug().Str("topic", f.Type).Msg("unknown push topic")
		return ev, false
	}
	return ev, true
}

func decodeRecord[T any](raw json.RawMessage, dst *T) error {
	return json.Unmarshal(raw, dst)
}
