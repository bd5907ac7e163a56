package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle       = lipgloss.NewStyle().Padding(1, 2)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	onlineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Faint(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
