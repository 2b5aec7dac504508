package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/rpc"
	"github.com/mesh-intelligence/nuzlocke/internal/tracker"
)

var errServerRunning = errors.New("a server is already listening on the socket")

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker on a Unix socket",
		Long: `Serve attaches the store and answers tracker requests on the socket
until interrupted. Other nuzlocke commands use the server when it is
running and the store directly when it is not.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{Level: a.settings.Level()}))

	dataDir, err := a.resolvedDataDir()
	if err != nil {
		return systemError(err)
	}
	socket, err := a.resolvedSocket(dataDir)
	if err != nil {
		return systemError(err)
	}
	if rpc.NewRemote(socket).Ping(ctx) == nil {
		return userError(fmt.Errorf("%w: %s", errServerRunning, socket))
	}

	store, err := a.attachStore(dataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Detach(); err != nil {
			logger.Error("detach failed", "error", err)
		}
	}()

	server := rpc.NewServer(socket, logger)
	rpc.Register(server, tracker.New(store, logger))

	logger.Info("serving", "data_dir", dataDir, "sync", a.settings.StoreConfig(dataDir).EffectiveSyncStrategy())
	if err := server.Serve(ctx); err != nil {
		return systemError(err)
	}
	logger.Info("server stopped")
	return nil
}
