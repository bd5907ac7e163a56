package sync

import (
	"context"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/models"
)

// AgentHook is the automated agent view: lifecycle control plus the
// operator chat. Status pushes merge into the status entry; agent replies
// arrive on the agent_response topic and append to the chat transcript.
type AgentHook struct {
	hookBase
}

func newAgentHook(s *Session) *AgentHook {
	return &AgentHook{hookBase: newHookBase(s)}
}

func (h *AgentHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(keyAgentStatus)
	h.subscribe(models.TopicAgentStatus, h.onAgentStatus)
	h.subscribe(models.TopicAgentResponse, h.onAgentResponse)

	// The transcript has no pull endpoint; it exists only as the session
	// accumulates it.
	if _, ok := h.session.cache.Peek(keyAgentChat); !ok {
		h.session.cache.Set(keyAgentChat, []models.AgentMessage{})
	}
}

func (h *AgentHook) Detach() { h.detach() }

// Status returns the agent's cached state.
func (h *AgentHook) Status(ctx context.Context) (models.AgentStatus, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyAgentStatus, func(ctx context.Context) (any, error) {
		return h.session.adapter.GetAgentStatus(ctx)
	}, h.session.defaultOptions())
	if err != nil {
		return models.AgentStatus{}, err
	}
	return v.(models.AgentStatus), nil
}

// Chat returns the accumulated conversation transcript.
func (h *AgentHook) Chat() []models.AgentMessage {
	v, ok := h.session.cache.Peek(keyAgentChat)
	if !ok {
		return nil
	}
	return v.([]models.AgentMessage)
}

// Start starts the agent, storing the returned state directly.
func (h *AgentHook) Start(ctx context.Context) (models.AgentStatus, error) {
	return Mutate(ctx, h.session, "start agent", func(ctx context.Context) (models.AgentStatus, error) {
		return h.session.adapter.StartAgent(ctx)
	}, Effect{MergeKey: keyAgentStatus})
}

// Stop stops the agent.
func (h *AgentHook) Stop(ctx context.Context) (models.AgentStatus, error) {
	return Mutate(ctx, h.session, "stop agent", func(ctx context.Context) (models.AgentStatus, error) {
		return h.session.adapter.StopAgent(ctx)
	}, Effect{MergeKey: keyAgentStatus})
}

// Send delivers one operator message. The accepted message is appended to
// the transcript immediately; the agent's reply arrives via push.
func (h *AgentHook) Send(ctx context.Context, content string) (models.AgentMessage, error) {
	msg, err := Mutate(ctx, h.session, "send message", func(ctx context.Context) (models.AgentMessage, error) {
		return h.session.adapter.SendAgentMessage(ctx, content)
	}, Effect{})
	if err != nil {
		return models.AgentMessage{}, err
	}
	h.appendChat(msg)
	return msg, nil
}

func (h *AgentHook) onAgentStatus(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Agent == nil || ev.Agent.Status == nil {
		return
	}
	partial := *ev.Agent.Status
	if applied := h.session.cache.Merge(keyAgentStatus, func(data any) (any, error) {
		status, _ := data.(models.AgentStatus)
		return cache.MergeRecord(status, partial)
	}); !applied {
		h.session.cache.Set(keyAgentStatus, partial)
	}
}

func (h *AgentHook) onAgentResponse(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Agent == nil || ev.Agent.Message == nil {
		return
	}
	h.appendChat(*ev.Agent.Message)
}

func (h *AgentHook) appendChat(msg models.AgentMessage) {
	if applied := h.session.cache.Merge(keyAgentChat, func(data any) (any, error) {
		transcript, _ := data.([]models.AgentMessage)
		for _, existing := range transcript {
			if existing.ID != "" && existing.ID == msg.ID {
				return transcript, nil
			}
		}
		return append(transcript, msg), nil
	}); !applied {
		h.session.cache.Set(keyAgentChat, []models.AgentMessage{msg})
	}
}
