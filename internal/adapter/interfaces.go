// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the pull (request/response) transport for
// communicating with the DEparrow marketplace API.
//
// The primary abstraction is [ServerAdapter], which decouples the sync layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrPaymentRequired] for
// 402). The server-provided message travels alongside the sentinel in
// [*APIError] and is surfaced verbatim to the user.
package adapter

import (
	"context"
	"time"

	"github.com/deparrow/console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the DEparrow
// marketplace API. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
//
// All methods honour ctx cancellation. Mutating methods (SubmitJob,
// CancelJob, Deposit, TransferCredits, the agent verbs) never retry
// internally; duplicating their side effects is the one thing the sync layer
// must not do on the caller's behalf.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests and extracts the user id from its claims.
	SetToken(token string) error

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// UserID returns the user id extracted from the token claims, or an
	// empty string before SetToken.
	UserID() string

	// TokenExpiry reports when the stored token lapses, or the zero time
	// when no token is set or its claims carry no expiry.
	TokenExpiry() time.Time

	// ListJobs fetches the caller's jobs with pagination and an optional
	// status filter.
	ListJobs(ctx context.Context, opts models.ListOptions) (models.JobListResponse, error)

	// GetJob fetches a single job, including its spec and, once the job
	// has finished, its results.
	GetJob(ctx context.Context, jobID string) (models.Job, error)

	// SubmitJob submits a new compute job. The request carries the
	// client-side credit cost estimate computed from the spec.
	SubmitJob(ctx context.Context, spec *models.JobSpec) (models.SubmitJobResponse, error)

	// CancelJob cancels a pending or running job; the response includes
	// the partial credit refund.
	CancelJob(ctx context.Context, jobID string) (models.CancelJobResponse, error)

	// GetJobLogs fetches the accumulated log lines of a job.
	GetJobLogs(ctx context.Context, jobID string) (models.JobLogsResponse, error)

	// GetJobResults fetches the outputs of a completed job.
	GetJobResults(ctx context.Context, jobID string) (models.JobResults, error)

	// ListNodes fetches registered compute nodes.
	ListNodes(ctx context.Context, opts models.ListOptions) (models.NodeListResponse, error)

	// GetNode fetches a single node.
	GetNode(ctx context.Context, nodeID string) (models.Node, error)

	// GetNodeContribution fetches contribution statistics and the
	// leaderboard ranking for a node.
	GetNodeContribution(ctx context.Context, nodeID string) (models.NodeContribution, error)

	// ListProviders fetches capacity providers.
	ListProviders(ctx context.Context, opts models.ListOptions) (models.ProviderListResponse, error)

	// GetWallet fetches the authenticated user's wallet.
	GetWallet(ctx context.Context) (models.Wallet, error)

	// ListTransactions fetches the wallet transaction history.
	ListTransactions(ctx context.Context, opts models.ListOptions) (models.TransactionListResponse, error)

	// Deposit adds credits to the wallet.
	Deposit(ctx context.Context, amount float64) (models.DepositResponse, error)

	// TransferCredits moves credits to another user.
	TransferCredits(ctx context.Context, toUserID string, amount float64) error

	// GetAgentStatus fetches the automated agent's current state.
	GetAgentStatus(ctx context.Context) (models.AgentStatus, error)

	// StartAgent starts the automated agent and returns its new state.
	StartAgent(ctx context.Context) (models.AgentStatus, error)

	// StopAgent stops the automated agent and returns its new state.
	StopAgent(ctx context.Context) (models.AgentStatus, error)

	// SendAgentMessage sends one operator chat message to the agent. The
	// agent's reply arrives asynchronously on the agent_response push
	// topic.
	SendAgentMessage(ctx context.Context, content string) (models.AgentMessage, error)

	// GetNetworkStats fetches network-wide capacity statistics.
	GetNetworkStats(ctx context.Context) (models.NetworkStats, error)

	// GetLeaderboard fetches the contribution leaderboard, limited to
	// limit rows when limit > 0.
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	// Health checks the API health endpoint.
	Health(ctx context.Context) (models.SystemHealth, error)
}
