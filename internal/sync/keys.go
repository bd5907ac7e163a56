package sync

import (
	"fmt"

	"github.com/deparrow/console/models"
)

// Cache keys. List keys bake the filter parameters in so that differently
// filtered views do not clobber each other; the bare prefix is what
// "created" events invalidate.
const (
	prefixJobs         = "jobs:"
	prefixJobsList     = "jobs:list"
	prefixNodes        = "nodes:"
	prefixNodesList    = "nodes:list"
	prefixProviders    = "providers:"
	prefixProvidersLst = "providers:list"

	keyWallet       = "wallet"
	keyTransactions = "wallet:transactions"
	keyAgentStatus  = "agent:status"
	keyAgentChat    = "agent:chat"
	keyNetworkStats = "system:stats"
	keyLeaderboard  = "system:leaderboard"
)

func listSuffix(opts models.ListOptions) string {
	if opts == (models.ListOptions{}) {
		return ""
	}
	return fmt.Sprintf(":%d:%d:%s", opts.Page, opts.Limit, opts.Status)
}

func keyJobsList(opts models.ListOptions) string { return prefixJobsList + listSuffix(opts) }
func keyJob(id string) string                    { return prefixJobs + "detail:" + id }
func keyJobLogs(id string) string                { return prefixJobs + "logs:" + id }
func keyJobResults(id string) string             { return prefixJobs + "results:" + id }

func keyNodesList(opts models.ListOptions) string { return prefixNodesList + listSuffix(opts) }
func keyNode(id string) string                    { return prefixNodes + "detail:" + id }
func keyNodeContribution(id string) string        { return prefixNodes + "contribution:" + id }

func keyProvidersList(opts models.ListOptions) string { return prefixProvidersLst + listSuffix(opts) }
