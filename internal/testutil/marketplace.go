// SPDX-License-Identifier: Apache-2.0

// Package testutil hosts an in-process marketplace double for integration
// tests. It serves the REST surface the console pulls from and a websocket
// endpoint that completes the push handshake, so a whole session can be
// exercised against real HTTP and websocket plumbing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/deparrow/console/models"
)

// Marketplace is a fake DEparrow marketplace. Seed it with fixtures, point
// a console session at URL/PushURL, and Broadcast frames to connected push
// clients.
type Marketplace struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu           sync.Mutex
	token        string
	jobs         []models.Job
	nodes        []models.Node
	providers    []models.Provider
	wallet       models.Wallet
	transactions []models.Transaction
	agent        models.AgentStatus
	stats        models.NetworkStats
	leaderboard  []models.LeaderboardEntry
	conns        map[*websocket.Conn]struct{}
	connected    chan struct{}
}

// MintToken issues a signed JWT the console accepts. The console reads the
// claims without verifying the signature, so any HMAC key works.
func MintToken(userID string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"sub":     userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testutil"))
	if err != nil {
		panic(err)
	}
	return token
}

// NewMarketplace starts the double. Only requests bearing token are served;
// everything else gets 401.
func NewMarketplace(token string) *Marketplace {
	m := &Marketplace{
		token:     token,
		agent:     models.AgentStatus{State: models.AgentStateStopped},
		conns:     make(map[*websocket.Conn]struct{}),
		connected: make(chan struct{}, 8),
	}

	r := chi.NewRouter()
	r.Get("/api/v1/health", m.handleHealth)
	r.Get("/ws", m.handlePush)

	r.Group(func(r chi.Router) {
		r.Use(m.requireToken)

		r.Get("/api/v1/jobs", m.handleListJobs)
		r.Get("/api/v1/jobs/{jobID}", m.handleGetJob)
		r.Post("/api/v1/jobs/submit", m.handleSubmitJob)
		r.Post("/api/v1/jobs/{jobID}/cancel", m.handleCancelJob)
		r.Get("/api/v1/jobs/{jobID}/logs", m.handleJobLogs)
		r.Get("/api/v1/jobs/{jobID}/results", m.handleJobResults)

		r.Get("/api/v1/nodes", m.handleListNodes)
		r.Get("/api/v1/nodes/{nodeID}", m.handleGetNode)
		r.Get("/api/v1/nodes/{nodeID}/contribution", m.handleNodeContribution)
		r.Get("/api/v1/providers", m.handleListProviders)

		r.Get("/api/v1/wallet", m.handleWallet)
		r.Get("/api/v1/wallet/transactions", m.handleTransactions)
		r.Post("/api/v1/wallet/deposit", m.handleDeposit)
		r.Post("/api/v1/wallet/transfer", m.handleTransfer)

		r.Get("/api/v1/agent", m.handleAgentStatus)
		r.Post("/api/v1/agent/start", m.handleAgentStart)
		r.Post("/api/v1/agent/stop", m.handleAgentStop)
		r.Post("/api/v1/agent/message", m.handleAgentMessage)

		r.Get("/api/v1/network/contribution", m.handleNetworkStats)
		r.Get("/api/v1/network/leaderboard", m.handleLeaderboard)
	})

	m.srv = httptest.NewServer(r)
	return m
}

// URL is the REST base URL.
func (m *Marketplace) URL() string { return m.srv.URL }

// PushURL is the websocket endpoint URL.
func (m *Marketplace) PushURL() string {
	return "ws" + strings.TrimPrefix(m.srv.URL, "http") + "/ws"
}

// Connected signals once per completed push handshake.
func (m *Marketplace) Connected() <-chan struct{} { return m.connected }

func (m *Marketplace) Close() {
	m.mu.Lock()
	for conn := range m.conns {
		_ = conn.Close()
	}
	m.conns = make(map[*websocket.Conn]struct{})
	m.mu.Unlock()
	m.srv.Close()
}

// ── fixtures ─────────────────────────────────────────────────────────────────

func (m *Marketplace) SeedJobs(jobs ...models.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, jobs...)
}

func (m *Marketplace) SeedNodes(nodes ...models.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = append(m.nodes, nodes...)
}

func (m *Marketplace) SeedProviders(providers ...models.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers = append(m.providers, providers...)
}

func (m *Marketplace) SetWallet(w models.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallet = w
}

func (m *Marketplace) SeedTransactions(txs ...models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txs...)
}

func (m *Marketplace) SetNetworkStats(stats models.NetworkStats, leaderboard []models.LeaderboardEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
	m.leaderboard = leaderboard
}

// Broadcast pushes a frame to every connected push client.
func (m *Marketplace) Broadcast(topic string, payload any) error {
	frame, err := models.NewFrame(topic, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(m.conns, conn)
		}
	}
	return nil
}

// ── push channel ─────────────────────────────────────────────────────────────

func (m *Marketplace) handlePush(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	// Handshake: first frame must be auth with the expected token.
	var auth models.Frame
	if err := conn.ReadJSON(&auth); err != nil {
		_ = conn.Close()
		return
	}
	var body struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(auth.Payload, &body)
	if auth.Type != models.TopicAuth || body.Token != m.token {
		reply, _ := models.NewFrame(models.TopicAuthError, map[string]string{"error": "invalid token"})
		_ = conn.WriteJSON(reply)
		_ = conn.Close()
		return
	}

	reply, _ := models.NewFrame(models.TopicAuthSuccess, map[string]string{"status": "ok"})
	if err := conn.WriteJSON(reply); err != nil {
		_ = conn.Close()
		return
	}

	m.mu.Lock()
	m.conns[conn] = struct{}{}
	m.mu.Unlock()
	select {
	case m.connected <- struct{}{}:
	default:
	}

	go m.serveConn(conn)
}

// serveConn answers pings and drains anything else the client sends.
func (m *Marketplace) serveConn(conn *websocket.Conn) {
	defer func() {
		m.mu.Lock()
		delete(m.conns, conn)
		m.mu.Unlock()
		_ = conn.Close()
	}()

	pong, _ := models.NewFrame(models.TopicPong, nil)
	for {
		var f models.Frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		if f.Type == models.TopicPing {
			m.mu.Lock()
			err := conn.WriteJSON(pong)
			m.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// ── REST handlers ────────────────────────────────────────────────────────────

func (m *Marketplace) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+m.token {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Marketplace) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.SystemHealth{Status: "ok", Time: time.Now()})
}

func (m *Marketplace) handleListJobs(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := r.URL.Query().Get("status")
	out := make([]models.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == "" || string(job.Status) == status {
			out = append(out, job)
		}
	}
	writeJSON(w, http.StatusOK, models.JobListResponse{Jobs: out, Total: len(out)})
}

func (m *Marketplace) handleGetJob(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobID := chi.URLParam(r, "jobID")
	for _, job := range m.jobs {
		if job.ID == jobID {
			writeJSON(w, http.StatusOK, job)
			return
		}
	}
	writeError(w, http.StatusNotFound, "job not found")
}

func (m *Marketplace) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Spec       *models.JobSpec `json:"spec"`
		CreditCost float64         `json:"credit_cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Spec == nil {
		writeError(w, http.StatusBadRequest, "invalid job spec")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.wallet.Balance < body.CreditCost {
		writeError(w, http.StatusPaymentRequired, "insufficient credits")
		return
	}

	job := models.Job{
		ID:          "job_" + time.Now().Format("150405.000000"),
		Name:        body.Spec.Name,
		Status:      models.JobStatusPending,
		Spec:        body.Spec,
		CreditCost:  body.CreditCost,
		SubmittedAt: time.Now(),
	}
	m.jobs = append(m.jobs, job)
	m.wallet.Balance -= body.CreditCost
	m.wallet.Spent += body.CreditCost

	writeJSON(w, http.StatusOK, models.SubmitJobResponse{
		Status:           "submitted",
		JobID:            job.ID,
		CreditDeducted:   body.CreditCost,
		RemainingBalance: m.wallet.Balance,
	})
}

func (m *Marketplace) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobID := chi.URLParam(r, "jobID")
	for i := range m.jobs {
		if m.jobs[i].ID != jobID {
			continue
		}
		refund := m.jobs[i].CreditCost
		m.jobs[i].Status = models.JobStatusCancelled
		m.wallet.Balance += refund
		writeJSON(w, http.StatusOK, models.CancelJobResponse{
			Status:           "cancelled",
			JobID:            jobID,
			RefundAmount:     refund,
			RemainingBalance: m.wallet.Balance,
		})
		return
	}
	writeError(w, http.StatusNotFound, "job not found")
}

func (m *Marketplace) handleJobLogs(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	writeJSON(w, http.StatusOK, models.JobLogsResponse{
		JobID: jobID,
		Lines: []string{"scheduled", "running"},
	})
}

func (m *Marketplace) handleJobResults(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobID := chi.URLParam(r, "jobID")
	for _, job := range m.jobs {
		if job.ID == jobID && job.Results != nil {
			writeJSON(w, http.StatusOK, job.Results)
			return
		}
	}
	writeError(w, http.StatusNotFound, "results not available")
}

func (m *Marketplace) handleListNodes(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, models.NodeListResponse{Nodes: m.nodes, Total: len(m.nodes)})
}

func (m *Marketplace) handleGetNode(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nodeID := chi.URLParam(r, "nodeID")
	for _, node := range m.nodes {
		if node.ID == nodeID {
			writeJSON(w, http.StatusOK, node)
			return
		}
	}
	writeError(w, http.StatusNotFound, "node not found")
}

func (m *Marketplace) handleNodeContribution(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nodeID := chi.URLParam(r, "nodeID")
	for _, node := range m.nodes {
		if node.ID != nodeID {
			continue
		}
		contribution := models.NodeContribution{}
		if node.Contribution != nil {
			contribution = *node.Contribution
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"node_id":      nodeID,
			"contribution": contribution,
			"ranking": map[string]int{
				"rank":        contribution.Rank,
				"total_nodes": len(m.nodes),
			},
		})
		return
	}
	writeError(w, http.StatusNotFound, "node not found")
}

func (m *Marketplace) handleListProviders(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, models.ProviderListResponse{Providers: m.providers, Total: len(m.providers)})
}

func (m *Marketplace) handleWallet(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, m.wallet)
}

func (m *Marketplace) handleTransactions(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, models.TransactionListResponse{
		Transactions: m.transactions,
		Total:        len(m.transactions),
	})
}

func (m *Marketplace) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.wallet.Balance += body.Amount
	tx := models.Transaction{
		ID:        "tx_" + time.Now().Format("150405.000000"),
		Type:      models.TransactionDeposit,
		Amount:    body.Amount,
		Timestamp: time.Now(),
	}
	m.transactions = append([]models.Transaction{tx}, m.transactions...)

	writeJSON(w, http.StatusOK, models.DepositResponse{
		TransactionID: tx.ID,
		Balance:       m.wallet.Balance,
	})
}

func (m *Marketplace) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ToUserID string  `json:"to_user_id"`
		Amount   float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount <= 0 || body.ToUserID == "" {
		writeError(w, http.StatusBadRequest, "invalid transfer")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.wallet.Balance < body.Amount {
		writeError(w, http.StatusPaymentRequired, "insufficient credits")
		return
	}
	m.wallet.Balance -= body.Amount
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

func (m *Marketplace) handleAgentStatus(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, m.agent)
}

func (m *Marketplace) handleAgentStart(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.agent.State = models.AgentStateRunning
	m.agent.StartedAt = &now
	writeJSON(w, http.StatusOK, m.agent)
}

func (m *Marketplace) handleAgentStop(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agent.State = models.AgentStateStopped
	m.agent.StartedAt = nil
	writeJSON(w, http.StatusOK, m.agent)
}

func (m *Marketplace) handleAgentMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		writeError(w, http.StatusBadRequest, "empty message")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.agent.State != models.AgentStateRunning {
		writeError(w, http.StatusConflict, "agent is not running")
		return
	}
	writeJSON(w, http.StatusOK, models.AgentMessage{
		ID:        "msg_" + time.Now().Format("150405.000000"),
		Role:      "user",
		Content:   body.Content,
		Timestamp: time.Now(),
	})
}

func (m *Marketplace) handleNetworkStats(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"network":   m.stats,
		"tiers":     m.stats.TierDistribution,
		"timestamp": time.Now(),
	})
}

func (m *Marketplace) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, models.LeaderboardResponse{Leaderboard: m.leaderboard})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
