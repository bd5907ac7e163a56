package models

import "time"

// NetworkStats aggregates capacity and load across the whole network.
type NetworkStats struct {
	TotalNodes       int            `json:"total_nodes"`
	OnlineNodes      int            `json:"online_nodes"`
	TotalCPU         int            `json:"total_cpu_cores"`
	TotalGPU         int            `json:"total_gpu_count"`
	TotalMemory      float64        `json:"total_memory_gb"`
	LiveGFlops       float64        `json:"live_gflops"`
	LiveTFlops       float64        `json:"live_tflops"`
	TierDistribution map[string]int `json:"tiers,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

// LeaderboardEntry is one row of the contribution leaderboard.
type LeaderboardEntry struct {
	Rank          int              `json:"rank"`
	NodeID        string           `json:"node_id"`
	Tier          ContributionTier `json:"tier"`
	CreditsEarned float64          `json:"credits_earned"`
	CPUHours      float64          `json:"cpu_usage_hours"`
	GPUHours      float64          `json:"gpu_usage_hours"`
	TotalHours    float64          `json:"total_hours"`
}

// SystemHealth is the answer of the health endpoint.
type SystemHealth struct {
	Status  string    `json:"status"`
	Version string    `json:"version,omitempty"`
	Uptime  float64   `json:"uptime_seconds,omitempty"`
	Time    time.Time `json:"time,omitempty"`
}
