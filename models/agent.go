package models

import "time"

// AgentState represents the lifecycle state of the automated agent.
type AgentState string

const (
	AgentStateStopped  AgentState = "stopped"
	AgentStateStarting AgentState = "starting"
	AgentStateRunning  AgentState = "running"
	AgentStateError    AgentState = "error"
)

// AgentStatus is the current state of the user's automated agent.
type AgentStatus struct {
	State      AgentState `json:"state"`
	Model      string     `json:"model,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	JobsPlaced int        `json:"jobs_placed"`
	LastError  string     `json:"last_error,omitempty"`
}

// AgentMessage is one turn of the operator/agent conversation.
type AgentMessage struct {
	ID        string    `json:"message_id"`
	Role      string    `json:"role"` // "user" or "agent"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
