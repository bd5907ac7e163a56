package models

import "time"

// NodeStatus represents the current state of a compute node.
type NodeStatus string

const (
	NodeStatusOnline      NodeStatus = "online"
	NodeStatusOffline     NodeStatus = "offline"
	NodeStatusMaintenance NodeStatus = "maintenance"
	NodeStatusSuspended   NodeStatus = "suspended"
)

// ContributionTier is a node's contribution level on the leaderboard.
type ContributionTier string

const (
	TierBronze    ContributionTier = "bronze"
	TierSilver    ContributionTier = "silver"
	TierGold      ContributionTier = "gold"
	TierDiamond   ContributionTier = "diamond"
	TierLegendary ContributionTier = "legendary"
)

// Node is a compute node registered on the DEparrow network.
type Node struct {
	ID            string            `json:"node_id"`
	Arch          string            `json:"arch"`
	Status        NodeStatus        `json:"status"`
	Resources     *NodeResources    `json:"resources,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
	LastSeen      time.Time         `json:"last_seen"`
	CreditsEarned float64           `json:"credits_earned"`
	Tier          ContributionTier  `json:"tier,omitempty"`
	Contribution  *NodeContribution `json:"contribution,omitempty"`
}

// NodeResources describes a node's advertised capacity.
type NodeResources struct {
	CPU      int    `json:"cpu_cores"`
	Memory   string `json:"memory"`
	GPU      int    `json:"gpu_count"`
	GPUModel string `json:"gpu_model,omitempty"`
	Storage  string `json:"storage,omitempty"`
}

// NodeContribution contains contribution statistics for a single node.
type NodeContribution struct {
	CPUUsageHours  float64 `json:"cpu_usage_hours"`
	GPUUsageHours  float64 `json:"gpu_usage_hours"`
	LiveGFlops     float64 `json:"live_gflops"`
	NetworkPercent float64 `json:"network_percent"`
	Rank           int     `json:"rank"`
	TotalNodes     int     `json:"total_nodes"`
}
