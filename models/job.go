package models

import "time"

// JobStatus represents the current state of a compute job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job is a compute job on the DEparrow network.
type Job struct {
	ID          string            `json:"job_id"`
	UserID      string            `json:"user_id,omitempty"`
	Name        string            `json:"name,omitempty"`
	Status      JobStatus         `json:"status"`
	Spec        *JobSpec          `json:"spec,omitempty"`
	Results     *JobResults       `json:"results,omitempty"`
	CreditCost  float64           `json:"credit_cost"`
	SubmittedAt time.Time         `json:"submitted_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Error       string            `json:"error,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// JobSpec defines what a job runs and the resources it needs.
type JobSpec struct {
	// Name is the display name assigned to the job on submission.
	Name      string            `json:"name,omitempty"`
	Image     string            `json:"image"`
	Command   []string          `json:"command,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	Resources *ResourceSpec     `json:"resources,omitempty"`
	// Timeout in seconds, 0 means the server default.
	Timeout int `json:"timeout,omitempty"`
	// Priority level 0-100, higher runs earlier.
	Priority int               `json:"priority,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// ResourceSpec describes the resource requirements of a job,
// in Kubernetes-style quantity strings.
type ResourceSpec struct {
	CPU     string `json:"cpu,omitempty"`     // e.g. "500m"
	Memory  string `json:"memory,omitempty"`  // e.g. "1Gi"
	GPU     string `json:"gpu,omitempty"`     // e.g. "1"
	Storage string `json:"storage,omitempty"` // e.g. "10Gi"
}

// JobResults contains the outputs of a finished job.
type JobResults struct {
	OutputCID    string            `json:"output_cid,omitempty"`
	Stdout       string            `json:"stdout,omitempty"`
	Stderr       string            `json:"stderr,omitempty"`
	ExitCode     int               `json:"exit_code"`
	Duration     float64           `json:"duration_seconds"`
	NodeID       string            `json:"node_id,omitempty"`
	DownloadURLs map[string]string `json:"download_urls,omitempty"`
}
