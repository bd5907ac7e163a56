package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

type httpServerAdapter struct {
	client *resty.Client

	token     string
	userID    string
	expiresAt time.Time

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from apiCfg,
// configures the underlying resty client with the resolved base URL and
// request timeout, and stores the bearer token when one is configured.
//
// Returns an error if apiCfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(apiCfg config.API, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(apiCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(apiCfg.RequestTimeout)

	a := &httpServerAdapter{client: client, logger: log}
	if apiCfg.Token != "" {
		if err := a.SetToken(apiCfg.Token); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests and reads
// the user id and expiry out of its claims.
func (h *httpServerAdapter) SetToken(token string) error {
	token = strings.TrimSpace(token)

	userID, expiresAt, err := parseTokenClaims(token)
	if err != nil {
		return err
	}

	h.token = token
	h.userID = userID
	h.expiresAt = expiresAt
	return nil
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// UserID implements [ServerAdapter].
func (h *httpServerAdapter) UserID() string {
	return h.userID
}

// TokenExpiry implements [ServerAdapter].
func (h *httpServerAdapter) TokenExpiry() time.Time {
	return h.expiresAt
}

// ── jobs ─────────────────────────────────────────────────────────────────────

// ListJobs implements [ServerAdapter]. It GETs /api/v1/jobs with the
// pagination and status filter parameters from opts.
func (h *httpServerAdapter) ListJobs(ctx context.Context, opts models.ListOptions) (models.JobListResponse, error) {
	var out models.JobListResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParams(listQuery(opts)).
		SetResult(&out).
		Get("/api/v1/jobs")
	if err != nil {
		return out, fmt.Errorf("list jobs request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// GetJob implements [ServerAdapter].
func (h *httpServerAdapter) GetJob(ctx context.Context, jobID string) (models.Job, error) {
	var out models.Job

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/jobs/" + url.PathEscape(jobID))
	if err != nil {
		return out, fmt.Errorf("get job request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// SubmitJob implements [ServerAdapter]. It POSTs the spec together with the
// client-side credit cost estimate to /api/v1/jobs/submit.
func (h *httpServerAdapter) SubmitJob(ctx context.Context, spec *models.JobSpec) (models.SubmitJobResponse, error) {
	var out models.SubmitJobResponse

	body := map[string]any{
		"spec":        spec,
		"credit_cost": EstimateCreditCost(spec),
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post("/api/v1/jobs/submit")
	if err != nil {
		return out, fmt.Errorf("submit job request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// CancelJob implements [ServerAdapter].
func (h *httpServerAdapter) CancelJob(ctx context.Context, jobID string) (models.CancelJobResponse, error) {
	var out models.CancelJobResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Post("/api/v1/jobs/" + url.PathEscape(jobID) + "/cancel")
	if err != nil {
		return out, fmt.Errorf("cancel job request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// GetJobLogs implements [ServerAdapter].
func (h *httpServerAdapter) GetJobLogs(ctx context.Context, jobID string) (models.JobLogsResponse, error) {
	var out models.JobLogsResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/jobs/" + url.PathEscape(jobID) + "/logs")
	if err != nil {
		return out, fmt.Errorf("get job logs request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// GetJobResults implements [ServerAdapter].
func (h *httpServerAdapter) GetJobResults(ctx context.Context, jobID string) (models.JobResults, error) {
	var out models.JobResults

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/jobs/" + url.PathEscape(jobID) + "/results")
	if err != nil {
		return out, fmt.Errorf("get job results request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// ── nodes and providers ──────────────────────────────────────────────────────

// ListNodes implements [ServerAdapter].
func (h *httpServerAdapter) ListNodes(ctx context.Context, opts models.ListOptions) (models.NodeListResponse, error) {
	var out models.NodeListResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParams(listQuery(opts)).
		SetResult(&out).
		Get("/api/v1/nodes")
	if err != nil {
		return out, fmt.Errorf("list nodes request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// GetNode implements [ServerAdapter].
func (h *httpServerAdapter) GetNode(ctx context.Context, nodeID string) (models.Node, error) {
	var out models.Node

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/nodes/" + url.PathEscape(nodeID))
	if err != nil {
		return out, fmt.Errorf("get node request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// GetNodeContribution implements [ServerAdapter]. The ranking block of the
// response is folded into the returned [models.NodeContribution].
func (h *httpServerAdapter) GetNodeContribution(ctx context.Context, nodeID string) (models.NodeContribution, error) {
	var out struct {
		NodeID       string                  `json:"node_id"`
		Contribution models.NodeContribution `json:"contribution"`
		Ranking      struct {
			Rank       int `json:"rank"`
			TotalNodes int `json:"total_nodes"`
		} `json:"ranking"`
	}

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/nodes/" + url.PathEscape(nodeID) + "/contribution")
	if err != nil {
		return models.NodeContribution{}, fmt.Errorf("get node contribution request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NodeContribution{}, err
	}

	contribution := out.Contribution
	contribution.Rank = out.Ranking.Rank
	contribution.TotalNodes = out.Ranking.TotalNodes
	return contribution, nil
}

// ListProviders implements [ServerAdapter].
func (h *httpServerAdapter) ListProviders(ctx context.Context, opts models.ListOptions) (models.ProviderListResponse, error) {
	var out models.ProviderListResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParams(listQuery(opts)).
		SetResult(&out).
		Get("/api/v1/providers")
	if err != nil {
		return out, fmt.Errorf("list providers request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// ── wallet ───────────────────────────────────────────────────────────────────

// GetWallet implements [ServerAdapter].
func (h *httpServerAdapter) GetWallet(ctx context.Context) (models.Wallet, error) {
	var out models.Wallet

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/wallet")
	if err != nil {
		return out, fmt.Errorf("get wallet request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// ListTransactions implements [ServerAdapter].
func (h *httpServerAdapter) ListTransactions(ctx context.Context, opts models.ListOptions) (models.TransactionListResponse, error) {
	var out models.TransactionListResponse

	resp, err := h.authedRequest(ctx).
		SetQueryParams(listQuery(opts)).
		SetResult(&out).
		Get("/api/v1/wallet/transactions")
	if err != nil {
		return out, fmt.Errorf("list transactions request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// Deposit implements [ServerAdapter].
func (h *httpServerAdapter) Deposit(ctx context.Context, amount float64) (models.DepositResponse, error) {
	var out models.DepositResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"amount": amount}).
		SetResult(&out).
		Post("/api/v1/wallet/deposit")
	if err != nil {
		return out, fmt.Errorf("deposit request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// TransferCredits implements [ServerAdapter].
func (h *httpServerAdapter) TransferCredits(ctx context.Context, toUserID string, amount float64) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"to_user_id": toUserID, "amount": amount}).
		Post("/api/v1/wallet/transfer")
	if err != nil {
		return fmt.Errorf("transfer credits request: %w", err)
	}

	return mapHTTPError(resp)
}

// ── agent ────────────────────────────────────────────────────────────────────

// GetAgentStatus implements [ServerAdapter].
func (h *httpServerAdapter) GetAgentStatus(ctx context.Context) (models.AgentStatus, error) {
	var out models.AgentStatus

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/agent")
	if err != nil {
		return out, fmt.Errorf("get agent status request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// StartAgent implements [ServerAdapter].
func (h *httpServerAdapter) StartAgent(ctx context.Context) (models.AgentStatus, error) {
	var out models.AgentStatus

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Post("/api/v1/agent/start")
	if err != nil {
		return out, fmt.Errorf("start agent request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// StopAgent implements [ServerAdapter].
func (h *httpServerAdapter) StopAgent(ctx context.Context) (models.AgentStatus, error) {
	var out models.AgentStatus

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Post("/api/v1/agent/stop")
	if err != nil {
		return out, fmt.Errorf("stop agent request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// SendAgentMessage implements [ServerAdapter].
func (h *httpServerAdapter) SendAgentMessage(ctx context.Context, content string) (models.AgentMessage, error) {
	var out models.AgentMessage

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"content": content}).
		SetResult(&out).
		Post("/api/v1/agent/message")
	if err != nil {
		return out, fmt.Errorf("send agent message request: %w", err)
	}

	return out, mapHTTPError(resp)
}

// ── system ───────────────────────────────────────────────────────────────────

// GetNetworkStats implements [ServerAdapter]. The network block of the
// response is flattened into the returned [models.NetworkStats].
func (h *httpServerAdapter) GetNetworkStats(ctx context.Context) (models.NetworkStats, error) {
	var out struct {
		Network   models.NetworkStats `json:"network"`
		Tiers     map[string]int      `json:"tiers"`
		Timestamp time.Time           `json:"timestamp"`
	}

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/network/contribution")
	if err != nil {
		return models.NetworkStats{}, fmt.Errorf("get network stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NetworkStats{}, err
	}

	stats := out.Network
	stats.TierDistribution = out.Tiers
	stats.Timestamp = out.Timestamp
	return stats, nil
}

// GetLeaderboard implements [ServerAdapter].
func (h *httpServerAdapter) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var out models.LeaderboardResponse

	req := h.authedRequest(ctx).SetResult(&out)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/v1/network/leaderboard")
	if err != nil {
		return nil, fmt.Errorf("get leaderboard request: %w", err)
	}

	return out.Leaderboard, mapHTTPError(resp)
}

// Health implements [ServerAdapter]. The health endpoint requires no token.
func (h *httpServerAdapter) Health(ctx context.Context) (models.SystemHealth, error) {
	var out models.SystemHealth

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/health")
	if err != nil {
		return out, fmt.Errorf("health request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

func listQuery(opts models.ListOptions) map[string]string {
	q := make(map[string]string, 3)
	if opts.Page > 0 {
		q["page"] = strconv.Itoa(opts.Page)
	}
	if opts.Limit > 0 {
		q["limit"] = strconv.Itoa(opts.Limit)
	}
	if opts.Status != "" {
		q["status"] = opts.Status
	}
	return q
}
