package sync

import (
	"context"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/models"
)

// ProvidersHook is the capacity providers view, read-only.
type ProvidersHook struct {
	hookBase
	opts    models.ListOptions
	listKey string
}

func newProvidersHook(s *Session, opts models.ListOptions) *ProvidersHook {
	return &ProvidersHook{
		hookBase: newHookBase(s),
		opts:     opts,
		listKey:  keyProvidersList(opts),
	}
}

func (h *ProvidersHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(h.listKey)
	h.subscribe(models.TopicProviderUpdate, h.onProviderUpdate)
}

func (h *ProvidersHook) Detach() { h.detach() }

func (h *ProvidersHook) List(ctx context.Context) ([]models.Provider, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, h.listKey, func(ctx context.Context) (any, error) {
		resp, err := h.session.adapter.ListProviders(ctx, h.opts)
		if err != nil {
			return nil, err
		}
		return resp.Providers, nil
	}, h.session.defaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]models.Provider), nil
}

func (h *ProvidersHook) onProviderUpdate(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Provider == nil {
		return
	}
	var partial models.Provider
	if err := decodeRecord(ev.Provider.Provider, &partial); err != nil || partial.ID == "" {
		h.session.logger.Warn().Err(err).Msg("provider update without decodable record")
		return
	}

	h.session.cache.Merge(h.listKey, func(data any) (any, error) {
		providers, _ := data.([]models.Provider)
		return cache.MergeByID(providers, partial, func(p models.Provider) string { return p.ID })
	})
}
