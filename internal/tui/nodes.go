package tui

import (
	"fmt"
	"strings"

	"github.com/deparrow/console/models"
)

type nodesModel struct {
	nodes  []models.Node
	err    error
	loaded bool
	cursor int
}

func newNodesModel() nodesModel {
	return nodesModel{}
}

func (m nodesModel) withData(nodes []models.Node, err error) nodesModel {
	m.loaded = true
	m.err = err
	if err == nil {
		m.nodes = nodes
		if m.cursor >= len(nodes) {
			m.cursor = max(0, len(nodes)-1)
		}
	}
	return m
}

func (m *nodesModel) move(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.nodes)-1)
}

func (m nodesModel) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to load nodes: " + m.err.Error())
	}
	if !m.loaded {
		return helpStyle.Render("loading nodes...")
	}
	if len(m.nodes) == 0 {
		return helpStyle.Render("no nodes online")
	}

	var b strings.Builder
	for i, node := range m.nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		glyph := offlineStyle.Render("○")
		if node.Status == models.NodeStatusOnline {
			glyph = onlineStyle.Render("●")
		}
		capacity := "-"
		if node.Resources != nil {
			capacity = fmt.Sprintf("cpu:%-3d mem:%-6s", node.Resources.CPU, node.Resources.Memory)
		}
		line := fmt.Sprintf("%s%s %-22s %-8s %-10s %s earned %s",
			cursor,
			glyph,
			truncate(node.ID, 22),
			node.Arch,
			node.Tier,
			capacity,
			formatCredits(node.CreditsEarned),
		)
		b.WriteString(line + "\n")
	}

	if m.cursor >= 0 && m.cursor < len(m.nodes) {
		node := m.nodes[m.cursor]
		detail := "last seen " + node.LastSeen.Format("15:04:05")
		if node.Contribution != nil {
			detail += fmt.Sprintf("  rank %d/%d  %.1f cpu-hours  %.2f%% of network",
				node.Contribution.Rank,
				node.Contribution.TotalNodes,
				node.Contribution.CPUUsageHours,
				node.Contribution.NetworkPercent,
			)
		}
		b.WriteString("\n" + helpStyle.Render(detail))
	}
	return b.String()
}
