package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deparrow/console/internal/app"
	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/internal/store"
	"github.com/deparrow/console/internal/sync"
	"github.com/deparrow/console/internal/transport"
	"github.com/deparrow/console/internal/tui"
	"github.com/deparrow/console/internal/workers"
)

// App is the console process: one sync session against the marketplace, a
// local snapshot store, the flusher worker, and the terminal dashboard.
type App struct {
	cfg     *config.ClientConfig
	session *sync.Session
	db      *store.DB
	repo    *store.SnapshotRepository
	workers *workers.Workers
	flusher *store.Flusher
	ui      *tui.TUI
	logger  *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	session, err := sync.NewSession(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate snapshot store: %w", err)
	}
	repo := store.NewSnapshotRepository(db)

	flusher := store.NewFlusher(session.Cache(), repo, cfg.Storage.FlushInterval, log)

	ui, err := tui.New(session, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{
		cfg:     cfg,
		session: session,
		db:      db,
		repo:    repo,
		workers: workers.New(flusher),
		flusher: flusher,
		ui:      ui,
		logger:  log.GetChildLogger("app"),
	}, nil
}

// Run starts the console and blocks until the user quits or a fatal error
// occurs. Cached snapshots are served immediately; the push channel and the
// marketplace API fill in behind them.
func (a *App) Run() error {
	ctx := context.Background()
	defer a.teardown(ctx)

	if err := a.session.RestoreSnapshots(ctx, a.repo); err != nil {
		a.logger.Warn().Err(err).Msg("snapshot restore failed, starting cold")
	}

	if err := a.session.Connect(ctx); err != nil {
		if errors.Is(err, transport.ErrAuthRejected) {
			return fmt.Errorf("%s: %w", app.MsgSessionExpired, err)
		}
		// Transient failure: the dashboard still works on cached and pulled
		// data, the status bar shows the channel as offline.
		a.logger.Warn().Err(err).Msg(app.MsgMarketplaceUnavailable)
	}

	a.workers.Run()

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) teardown(ctx context.Context) {
	a.flusher.Stop()

	persistCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.session.PersistSnapshots(persistCtx, a.repo); err != nil {
		a.logger.Warn().Err(err).Msg("final snapshot persist failed")
	}

	if err := a.session.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("session close error")
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("snapshot store close error")
	}
}
