// SPDX-License-Identifier: Apache-2.0

// Package models defines the record shapes exchanged with the DEparrow
// marketplace: jobs, nodes, providers, wallet transactions, agent state,
// network statistics, and the framed events of the push channel.
//
// The sync layer treats these records as payloads it merges and invalidates;
// beyond the id and status fields it does not interpret them.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Push channel topics. A frame's Type field carries one of these.
const (
	// Lifecycle topics, delivered to wildcard subscribers only.
	TopicConnected    = "connected"
	TopicAuthSuccess  = "auth_success"
	TopicAuthError    = "auth_error"
	TopicDisconnected = "disconnected"

	// Domain topics.
	TopicJobUpdate      = "job_update"
	TopicJobCreated     = "job_created"
	TopicJobLog         = "job_log"
	TopicNodeUpdate     = "node_update"
	TopicNodeCreated    = "node_created"
	TopicProviderUpdate = "provider_update"
	TopicTransaction    = "transaction"
	TopicAgentStatus    = "agent_status"
	TopicAgentResponse  = "agent_response"
	TopicSystemStats    = "system_stats"

	// Client-to-server control frames.
	TopicAuth = "auth"
	TopicPing = "ping"
	TopicPong = "pong"

	// TopicWildcard subscribes to every inbound frame, lifecycle
	// topics included.
	TopicWildcard = "*"
)

// Frame is the wire envelope of the push channel.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewFrame marshals payload into a Frame of the given type.
func NewFrame(topic string, payload any) (Frame, error) {
	if payload == nil {
		return Frame{Type: topic}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	return Frame{Type: topic, Payload: raw}, nil
}

// Event is a frame decoded into its domain payload. Exactly one of the
// payload fields is set, matching Topic; frames whose topic is not known
// land in Unknown so that callers can log rather than silently drop them.
type Event struct {
	Topic string

	Job         *JobEvent
	Node        *NodeEvent
	Provider    *ProviderEvent
	Transaction *TransactionEvent
	Agent       *AgentEvent
	Log         *JobLogEvent
	Stats       *NetworkStats
	Unknown     json.RawMessage
}

// JobEvent carries a full or partial job record pushed by the server.
type JobEvent struct {
	Job json.RawMessage `json:"job"`
}

// NodeEvent carries a full or partial node record pushed by the server.
type NodeEvent struct {
	Node json.RawMessage `json:"node"`
}

// ProviderEvent carries a full or partial provider record.
type ProviderEvent struct {
	Provider json.RawMessage `json:"provider"`
}

// TransactionEvent announces a wallet movement. Balance is the post-
// transaction balance so the wallet entry can be updated without a refetch.
type TransactionEvent struct {
	Transaction Transaction `json:"transaction"`
	Balance     float64     `json:"balance"`
}

// AgentEvent carries either an agent status change or a chat response.
type AgentEvent struct {
	Status  *AgentStatus  `json:"status,omitempty"`
	Message *AgentMessage `json:"message,omitempty"`
}

// JobLogEvent is an incremental log line for a running job.
type JobLogEvent struct {
	JobID     string    `json:"job_id"`
	Line      string    `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

// DecodeEvent decodes a frame's payload into the tagged variant for its
// topic. Lifecycle and control topics decode to an Event with only Topic
// set. An unrecognised topic is not an error: the raw payload is preserved
// in Unknown.
func DecodeEvent(f Frame) (Event, error) {
	ev := Event{Topic: f.Type}

	switch f.Type {
	case TopicConnected, TopicAuthSuccess, TopicAuthError, TopicDisconnected, TopicPing, TopicPong:
		return ev, nil
	case TopicJobUpdate, TopicJobCreated:
		ev.Job = &JobEvent{}
		return ev, decodePayload(f, ev.Job)
	case TopicNodeUpdate, TopicNodeCreated:
		ev.Node = &NodeEvent{}
		return ev, decodePayload(f, ev.Node)
	case TopicProviderUpdate:
		ev.Provider = &ProviderEvent{}
		return ev, decodePayload(f, ev.Provider)
	case TopicTransaction:
		ev.Transaction = &TransactionEvent{}
		return ev, decodePayload(f, ev.Transaction)
	case TopicJobLog:
		ev.Log = &JobLogEvent{}
		return ev, decodePayload(f, ev.Log)
	case TopicAgentStatus, TopicAgentResponse:
		ev.Agent = &AgentEvent{}
		return ev, decodePayload(f, ev.Agent)
	case TopicSystemStats:
		ev.Stats = &NetworkStats{}
		return ev, decodePayload(f, ev.Stats)
	default:
		ev.Unknown = f.Payload
		return ev, nil
	}
}

func decodePayload(f Frame, dst any) error {
	if len(f.Payload) == 0 {
		return fmt.Errorf("empty %s payload", f.Type)
	}
	if err := json.Unmarshal(f.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", f.Type, err)
	}
	return nil
}
