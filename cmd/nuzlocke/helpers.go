package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/nuzlocke/internal/rpc"
	"github.com/mesh-intelligence/nuzlocke/internal/tracker"
	"github.com/mesh-intelligence/nuzlocke/pkg/sqlite"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

const pingTimeout = 250 * time.Millisecond

// openTracker returns the server's tracker when one answers on the
// socket, and otherwise a tracker over the local store. The caller must
// call the returned close function.
func (a *app) openTracker(ctx context.Context, logger *slog.Logger) (types.Tracker, func() error, error) {
	dataDir, err := a.resolvedDataDir()
	if err != nil {
		return nil, nil, systemError(fmt.Errorf("resolve data dir: %w", err))
	}
	socket, err := a.resolvedSocket(dataDir)
	if err != nil {
		return nil, nil, systemError(fmt.Errorf("resolve socket: %w", err))
	}

	remote := rpc.NewRemote(socket)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := remote.Ping(pingCtx); err == nil {
		logger.Debug("using server", "socket", socket)
		return remote, func() error { return nil }, nil
	}

	store, err := a.attachStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("using local store", "data_dir", dataDir)
	return tracker.New(store, logger), store.Detach, nil
}

// attachStore attaches the configured store to dataDir.
func (a *app) attachStore(dataDir string) (types.Store, error) {
	cfg := a.settings.StoreConfig(dataDir)
	if err := cfg.Validate(); err != nil {
		return nil, userError(fmt.Errorf("config: %w", err))
	}
	store := sqlite.NewBackend()
	if err := store.Attach(cfg); err != nil {
		return nil, systemError(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// withTracker opens a tracker, runs fn and closes the tracker.
func (a *app) withTracker(ctx context.Context, fn func(types.Tracker) error) error {
	svc, closeFn, err := a.openTracker(ctx, a.cliLogger())
	if err != nil {
		return err
	}
	err = fn(svc)
	if closeErr := closeFn(); closeErr != nil && err == nil {
		err = systemError(fmt.Errorf("detach store: %w", closeErr))
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func partnerName(run types.Run, e types.Entry) string {
	if !types.IsPaired(run) || e.Partner == nil {
		return "-"
	}
	return e.Partner.Name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
