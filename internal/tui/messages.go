package tui

import (
	"github.com/deparrow/console/internal/notify"
	"github.com/deparrow/console/models"
)

type jobsLoadedMsg struct {
	jobs []models.Job
	err  error
}

type nodesLoadedMsg struct {
	nodes []models.Node
	err   error
}

type walletLoadedMsg struct {
	wallet       models.Wallet
	transactions []models.Transaction
	err          error
}

type statsLoadedMsg struct {
	stats       models.NetworkStats
	leaderboard []models.LeaderboardEntry
	err         error
}

type jobCancelledMsg struct {
	resp models.CancelJobResponse
	err  error
}

type depositDoneMsg struct {
	resp models.DepositResponse
	err  error
}

// pushMsg is one frame from the push channel, delivered through the
// wildcard subscription.
type pushMsg struct {
	frame models.Frame
}

type notificationMsg struct {
	note notify.Notification
}

type copiedMsg struct{}

type clearStatusMsg struct{}

type refreshTickMsg struct{}
