package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deparrow/console/internal/app"
	"github.com/deparrow/console/internal/sync"
	"github.com/deparrow/console/internal/transport"
	"github.com/deparrow/console/models"
)

type tab int

const (
	tabJobs tab = iota
	tabNodes
	tabWallet
	tabStats
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabJobs:
		return "Jobs"
	case tabNodes:
		return "Nodes"
	case tabWallet:
		return "Wallet"
	case tabStats:
		return "Network"
	default:
		return "?"
	}
}

type appModel struct {
	ctx     context.Context
	session *sync.Session

	jobsHook   *sync.JobsHook
	nodesHook  *sync.NodesHook
	walletHook *sync.WalletHook
	systemHook *sync.SystemHook

	pushSub *transport.Subscription
	pushCh  chan models.Frame

	active tab
	jobs   jobsModel
	nodes  nodesModel
	wallet walletModel
	stats  statsModel

	connected  bool
	status     string
	quitByUser bool
}

func newAppModel(ctx context.Context, session *sync.Session) appModel {
	m := appModel{
		ctx:        ctx,
		session:    session,
		jobsHook:   session.Jobs(models.ListOptions{}),
		nodesHook:  session.Nodes(models.ListOptions{}),
		walletHook: session.Wallet(),
		systemHook: session.System(),
		pushCh:     make(chan models.Frame, 64),
		jobs:       newJobsModel(),
		nodes:      newNodesModel(),
		wallet:     newWalletModel(),
		stats:      newStatsModel(),
		connected:  session.Connected(),
	}

	m.jobsHook.Attach()
	m.nodesHook.Attach()
	m.walletHook.Attach()
	m.systemHook.Attach()

	// Wildcard subscription: every inbound frame nudges the UI to re-read
	// the already-merged cache. Drop rather than block the dispatcher.
	ch := m.pushCh
	m.pushSub = session.Subscribe(models.TopicWildcard, func(f models.Frame) {
		select {
		case ch <- f:
		default:
		}
	})

	return m
}

func (m appModel) teardown() {
	m.pushSub.Unsubscribe()
	m.jobsHook.Detach()
	m.nodesHook.Detach()
	m.walletHook.Detach()
	m.systemHook.Detach()
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadJobs,
		m.loadNodes,
		m.loadWallet,
		m.loadStats,
		m.waitPush,
		m.waitNotification,
		refreshTick(),
	)
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m appModel) loadJobs() tea.Msg {
	jobs, err := m.jobsHook.List(m.ctx)
	return jobsLoadedMsg{jobs: jobs, err: err}
}

func (m appModel) loadNodes() tea.Msg {
	nodes, err := m.nodesHook.List(m.ctx)
	return nodesLoadedMsg{nodes: nodes, err: err}
}

func (m appModel) loadWallet() tea.Msg {
	wallet, err := m.walletHook.Balance(m.ctx)
	if err != nil {
		return walletLoadedMsg{err: err}
	}
	transactions, err := m.walletHook.Transactions(m.ctx)
	return walletLoadedMsg{wallet: wallet, transactions: transactions, err: err}
}

func (m appModel) loadStats() tea.Msg {
	stats, err := m.systemHook.Stats(m.ctx)
	if err != nil {
		return statsLoadedMsg{err: err}
	}
	leaderboard, err := m.systemHook.Leaderboard(m.ctx)
	return statsLoadedMsg{stats: stats, leaderboard: leaderboard, err: err}
}

func (m appModel) waitPush() tea.Msg {
	f, ok := <-m.pushCh
	if !ok {
		return nil
	}
	return pushMsg{frame: f}
}

func (m appModel) waitNotification() tea.Msg {
	note, ok := <-m.session.Notifications()
	if !ok {
		return nil
	}
	return notificationMsg{note: note}
}

func refreshTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// reloadActive re-reads the active tab from the cache.
func (m appModel) reloadActive() tea.Cmd {
	switch m.active {
	case tabJobs:
		return m.loadJobs
	case tabNodes:
		return m.loadNodes
	case tabWallet:
		return m.loadWallet
	case tabStats:
		return m.loadStats
	default:
		return nil
	}
}

// reloadForTopic maps a push topic to the view reads it affects.
func (m appModel) reloadForTopic(topic string) tea.Cmd {
	switch topic {
	case models.TopicJobUpdate, models.TopicJobCreated, models.TopicJobLog:
		return m.loadJobs
	case models.TopicNodeUpdate, models.TopicNodeCreated:
		return m.loadNodes
	case models.TopicTransaction:
		return m.loadWallet
	case models.TopicSystemStats:
		return m.loadStats
	default:
		return nil
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case jobsLoadedMsg:
		m.jobs = m.jobs.withData(msg.jobs, msg.err)
		return m, nil
	case nodesLoadedMsg:
		m.nodes = m.nodes.withData(msg.nodes, msg.err)
		return m, nil
	case walletLoadedMsg:
		m.wallet = m.wallet.withData(msg.wallet, msg.transactions, msg.err)
		return m, nil
	case statsLoadedMsg:
		m.stats = m.stats.withData(msg.stats, msg.leaderboard, msg.err)
		return m, nil

	case jobCancelledMsg:
		m.jobs.confirming = false
		if msg.err != nil {
			m.status = errorStyle.Render("cancel failed: " + msg.err.Error())
		} else {
			m.status = noticeStyle.Render("job cancelled, refunded " + formatCredits(msg.resp.RefundAmount))
		}
		return m, tea.Batch(m.loadJobs, clearStatusLater())

	case depositDoneMsg:
		m.wallet.depositing = false
		if msg.err != nil {
			m.status = errorStyle.Render("deposit failed: " + msg.err.Error())
		} else {
			m.status = noticeStyle.Render("deposited, balance " + formatCredits(msg.resp.Balance))
		}
		return m, tea.Batch(m.loadWallet, clearStatusLater())

	case pushMsg:
		switch msg.frame.Type {
		case models.TopicConnected:
			m.connected = true
		case models.TopicDisconnected:
			m.connected = false
		case models.TopicAuthError:
			m.connected = false
			m.status = errorStyle.Render(app.MsgSessionExpired)
		}
		return m, tea.Batch(m.waitPush, m.reloadForTopic(msg.frame.Type))

	case notificationMsg:
		m.status = noticeStyle.Render(msg.note.Title + ": " + msg.note.Message)
		return m, tea.Batch(m.waitNotification, clearStatusLater())

	case copiedMsg:
		m.status = noticeStyle.Render("copied to clipboard")
		return m, clearStatusLater()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.reloadActive(), refreshTick())
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal states capture input first.
	if m.active == tabJobs && m.jobs.confirming {
		return m.handleCancelConfirm(msg)
	}
	if m.active == tabWallet && m.wallet.depositing {
		return m.handleDepositInput(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit

	case key.Matches(msg, keys.tab):
		m.active = (m.active + 1) % tabCount
		return m, m.reloadActive()
	case key.Matches(msg, keys.backtab):
		m.active = (m.active + tabCount - 1) % tabCount
		return m, m.reloadActive()

	case key.Matches(msg, keys.refresh):
		return m, m.reloadActive()

	case key.Matches(msg, keys.up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, keys.cancel):
		if m.active == tabJobs {
			if job, ok := m.jobs.current(); ok && cancellable(job.Status) {
				m.jobs.confirming = true
				m.jobs.pendingCancel = job.ID
			}
		}
		return m, nil

	case key.Matches(msg, keys.copy):
		if m.active == tabJobs {
			if job, ok := m.jobs.current(); ok {
				return m, copyToClipboard(job.ID)
			}
		}
		return m, nil

	case key.Matches(msg, keys.deposit):
		if m.active == tabWallet {
			m.wallet = m.wallet.startDeposit()
			return m, nil
		}
		return m, nil
	}

	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	switch m.active {
	case tabJobs:
		m.jobs.move(delta)
	case tabNodes:
		m.nodes.move(delta)
	case tabWallet:
		m.wallet.move(delta)
	}
}

func (m appModel) handleCancelConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		jobID := m.jobs.pendingCancel
		return m, func() tea.Msg {
			resp, err := m.jobsHook.Cancel(m.ctx, jobID)
			return jobCancelledMsg{resp: resp, err: err}
		}
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.jobs.confirming = false
		m.jobs.pendingCancel = ""
	}
	return m, nil
}

func (m appModel) handleDepositInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		amount, err := m.wallet.depositAmount()
		if err != nil {
			m.status = errorStyle.Render(err.Error())
			return m, clearStatusLater()
		}
		return m, func() tea.Msg {
			resp, err := m.walletHook.Deposit(m.ctx, amount)
			return depositDoneMsg{resp: resp, err: err}
		}
	case key.Matches(msg, keys.esc):
		m.wallet.depositing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.wallet.amountInput, cmd = m.wallet.amountInput.Update(msg)
	return m, cmd
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	header := titleStyle.Render("DEparrow Console") + "   " + m.tabsView() + "\n"
	header += m.statusBar() + "\n\n"

	var body string
	switch m.active {
	case tabJobs:
		body = m.jobs.View()
	case tabNodes:
		body = m.nodes.View()
	case tabWallet:
		body = m.wallet.View()
	case tabStats:
		body = m.stats.View()
	}

	footer := "\n" + helpStyle.Render(m.helpLine())
	return appStyle.Render(header + body + footer)
}

func (m appModel) tabsView() string {
	out := ""
	for t := tab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.active {
			out += activeTabStyle.Render(label)
		} else {
			out += tabStyle.Render(label)
		}
	}
	return out
}

func (m appModel) statusBar() string {
	bar := offlineStyle.Render("○ offline")
	if m.connected {
		bar = onlineStyle.Render("● live")
	}
	if m.status != "" {
		bar += "  " + m.status
	}
	return bar
}

func (m appModel) helpLine() string {
	switch m.active {
	case tabJobs:
		return "tab switch  ↑/↓ select  x cancel  c copy id  r refresh  q quit"
	case tabWallet:
		return "tab switch  ↑/↓ select  d deposit  r refresh  q quit"
	default:
		return "tab switch  ↑/↓ select  r refresh  q quit"
	}
}

func cancellable(status models.JobStatus) bool {
	return status == models.JobStatusPending || status == models.JobStatusRunning
}
