package tui

import (
	"fmt"
	"strings"

	"github.com/deparrow/console/models"
)

type statsModel struct {
	stats       models.NetworkStats
	leaderboard []models.LeaderboardEntry
	err         error
	loaded      bool
}

func newStatsModel() statsModel {
	return statsModel{}
}

func (m statsModel) withData(stats models.NetworkStats, leaderboard []models.LeaderboardEntry, err error) statsModel {
	m.loaded = true
	m.err = err
	if err == nil {
		m.stats = stats
		m.leaderboard = leaderboard
	}
	return m
}

func (m statsModel) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to load network stats: " + m.err.Error())
	}
	if !m.loaded {
		return helpStyle.Render("loading network stats...")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("nodes %s / %d total   cpu %d cores   gpu %d   memory %.0f GB\n",
		onlineStyle.Render(fmt.Sprintf("%d online", m.stats.OnlineNodes)),
		m.stats.TotalNodes,
		m.stats.TotalCPU,
		m.stats.TotalGPU,
		m.stats.TotalMemory,
	))
	b.WriteString(fmt.Sprintf("live compute %.2f TFLOPS\n", m.stats.LiveTFlops))

	if len(m.stats.TierDistribution) > 0 {
		b.WriteString(helpStyle.Render("tiers: "+formatTiers(m.stats.TierDistribution)) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Leaderboard") + "\n")
	if len(m.leaderboard) == 0 {
		b.WriteString(helpStyle.Render("no contributors ranked yet"))
		return b.String()
	}
	for _, entry := range m.leaderboard {
		b.WriteString(fmt.Sprintf(" %2d. %-22s %-10s %10s  %.1f h\n",
			entry.Rank,
			truncate(entry.NodeID, 22),
			entry.Tier,
			formatCredits(entry.CreditsEarned),
			entry.TotalHours,
		))
	}
	return b.String()
}

func formatTiers(tiers map[string]int) string {
	order := []models.ContributionTier{
		models.TierLegendary, models.TierDiamond, models.TierGold, models.TierSilver, models.TierBronze,
	}
	parts := make([]string, 0, len(order))
	for _, tier := range order {
		if n, ok := tiers[string(tier)]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", tier, n))
		}
	}
	return strings.Join(parts, "  ")
}
