package sync

import (
	"context"

	"github.com/deparrow/console/models"
)

// SystemHook is the network-wide view: capacity statistics, the
// contribution leaderboard, and API health. Stats arrive both by pull and
// on the system_stats push topic; the push payload is a complete record and
// replaces the entry outright.
type SystemHook struct {
	hookBase
	leaderboardLimit int
}

func newSystemHook(s *Session) *SystemHook {
	return &SystemHook{hookBase: newHookBase(s), leaderboardLimit: 10}
}

func (h *SystemHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(keyNetworkStats)
	h.subscribe(models.TopicSystemStats, h.onSystemStats)
}

func (h *SystemHook) Detach() { h.detach() }

// Stats returns the cached network statistics.
func (h *SystemHook) Stats(ctx context.Context) (models.NetworkStats, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyNetworkStats, func(ctx context.Context) (any, error) {
		return h.session.adapter.GetNetworkStats(ctx)
	}, h.session.defaultOptions())
	if err != nil {
		return models.NetworkStats{}, err
	}
	return v.(models.NetworkStats), nil
}

// Leaderboard returns the cached contribution leaderboard.
func (h *SystemHook) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyLeaderboard, func(ctx context.Context) (any, error) {
		return h.session.adapter.GetLeaderboard(ctx, h.leaderboardLimit)
	}, h.session.defaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]models.LeaderboardEntry), nil
}

// Health checks the API directly, uncached: a health probe served from
// cache answers the wrong question.
func (h *SystemHook) Health(ctx context.Context) (models.SystemHealth, error) {
	return h.session.adapter.Health(ctx)
}

func (h *SystemHook) onSystemStats(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Stats == nil {
		return
	}
	h.session.cache.Set(keyNetworkStats, *ev.Stats)
}
