package models

import "time"

// Provider is an organisation or individual offering compute capacity.
type Provider struct {
	ID         string    `json:"provider_id"`
	Name       string    `json:"name"`
	NodeCount  int       `json:"node_count"`
	Region     string    `json:"region,omitempty"`
	Reputation float64   `json:"reputation"`
	Verified   bool      `json:"verified"`
	JoinedAt   time.Time `json:"joined_at"`
}
