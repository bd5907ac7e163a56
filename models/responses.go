package models

// ListOptions carries the pagination and filter parameters accepted by the
// list endpoints. Zero values are omitted from the query string.
type ListOptions struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

// JobListResponse is the envelope of GET /api/v1/jobs.
type JobListResponse struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

// NodeListResponse is the envelope of GET /api/v1/nodes.
type NodeListResponse struct {
	Nodes  []Node `json:"nodes"`
	Total  int    `json:"total"`
	Online int    `json:"online"`
}

// ProviderListResponse is the envelope of GET /api/v1/providers.
type ProviderListResponse struct {
	Providers []Provider `json:"providers"`
	Total     int        `json:"total"`
}

// TransactionListResponse is the envelope of GET /api/v1/wallet/transactions.
type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

// SubmitJobResponse is the envelope of POST /api/v1/jobs/submit.
type SubmitJobResponse struct {
	Status           string  `json:"status"`
	JobID            string  `json:"job_id"`
	CreditDeducted   float64 `json:"credit_deducted"`
	RemainingBalance float64 `json:"remaining_balance"`
	Message          string  `json:"message,omitempty"`
}

// CancelJobResponse is the envelope of POST /api/v1/jobs/{id}/cancel.
type CancelJobResponse struct {
	Status           string  `json:"status"`
	JobID            string  `json:"job_id"`
	RefundAmount     float64 `json:"refund_amount"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// JobLogsResponse is the envelope of GET /api/v1/jobs/{id}/logs.
type JobLogsResponse struct {
	JobID string   `json:"job_id"`
	Lines []string `json:"lines"`
}

// DepositResponse is the envelope of POST /api/v1/wallet/deposit.
type DepositResponse struct {
	TransactionID string  `json:"transaction_id"`
	Balance       float64 `json:"balance"`
}

// LeaderboardResponse is the envelope of GET /api/v1/network/leaderboard.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
