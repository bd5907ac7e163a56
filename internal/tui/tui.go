// Package tui renders the console dashboard: tabbed views over the jobs,
// nodes, wallet and network hooks, with a status bar reflecting the push
// channel state and one-shot notifications.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/internal/sync"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	session *sync.Session
	logger  *logger.Logger
}

func New(session *sync.Session, log *logger.Logger) (*TUI, error) {
	if session == nil {
		return nil, errors.New("tui: nil session")
	}
	return &TUI{session: session, logger: log.GetChildLogger("tui")}, nil
}

// Run blocks until the user quits or the program fails.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.session)
	defer model.teardown()

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
