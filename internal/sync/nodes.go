package sync

import (
	"context"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/models"
)

// NodesHook is the compute nodes view. Node updates merge by id; newly
// registered nodes invalidate the list.
type NodesHook struct {
	hookBase
	opts    models.ListOptions
	listKey string
}

func newNodesHook(s *Session, opts models.ListOptions) *NodesHook {
	return &NodesHook{
		hookBase: newHookBase(s),
		opts:     opts,
		listKey:  keyNodesList(opts),
	}
}

func (h *NodesHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(h.listKey)
	h.subscribe(models.TopicNodeUpdate, h.onNodeUpdate)
	h.subscribe(models.TopicNodeCreated, h.onNodeCreated)
}

func (h *NodesHook) Detach() { h.detach() }

func (h *NodesHook) List(ctx context.Context) ([]models.Node, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, h.listKey, func(ctx context.Context) (any, error) {
		resp, err := h.session.adapter.ListNodes(ctx, h.opts)
		if err != nil {
			return nil, err
		}
		return resp.Nodes, nil
	}, h.session.defaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]models.Node), nil
}

func (h *NodesHook) Get(ctx context.Context, nodeID string) (models.Node, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyNode(nodeID), func(ctx context.Context) (any, error) {
		return h.session.adapter.GetNode(ctx, nodeID)
	}, h.session.defaultOptions())
	if err != nil {
		return models.Node{}, err
	}
	return v.(models.Node), nil
}

// Contribution returns the node's usage statistics and leaderboard rank.
func (h *NodesHook) Contribution(ctx context.Context, nodeID string) (models.NodeContribution, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyNodeContribution(nodeID), func(ctx context.Context) (any, error) {
		return h.session.adapter.GetNodeContribution(ctx, nodeID)
	}, h.session.defaultOptions())
	if err != nil {
		return models.NodeContribution{}, err
	}
	return v.(models.NodeContribution), nil
}

func (h *NodesHook) onNodeUpdate(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Node == nil {
		return
	}
	var partial models.Node
	if err := decodeRecord(ev.Node.Node, &partial); err != nil || partial.ID == "" {
		h.session.logger.Warn().Err(err).Msg("node update without decodable node record")
		return
	}

	h.session.cache.Merge(h.listKey, func(data any) (any, error) {
		nodes, _ := data.([]models.Node)
		return cache.MergeByID(nodes, partial, func(n models.Node) string { return n.ID })
	})
	h.session.cache.Merge(keyNode(partial.ID), func(data any) (any, error) {
		node, _ := data.(models.Node)
		return cache.MergeRecord(node, partial)
	})
}

func (h *NodesHook) onNodeCreated(models.Frame) {
	h.session.cache.InvalidatePrefix(prefixNodesList)
}
