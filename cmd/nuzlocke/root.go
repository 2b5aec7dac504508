package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/config"
	"github.com/mesh-intelligence/nuzlocke/internal/paths"
	"github.com/mesh-intelligence/nuzlocke/pkg/nuzlocke"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flags and what the root command derives from them
// before any subcommand runs.
type app struct {
	configDir string
	dataDir   string
	socket    string
	logLevel  string
	jsonMode  bool

	settings config.Settings
	stderr   io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "nuzlocke",
		Short:         "Track Nuzlocke runs and edit their entries",
		Version:       nuzlocke.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/nuzlocke)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.nuzlocke-db)")
	pf.StringVar(&a.socket, "socket", "", "server socket (default: <data-dir>/nuzlocke.sock)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default: from config.yaml)")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newServeCmd(a),
		newRunCmd(a),
		newSpeciesCmd(a),
		newEntryCmd(a),
		newPoolCmd(a),
		newEditCmd(a),
	)
	return root
}

// load resolves the configuration directory and reads config.yaml.
func (a *app) load(cmd *cobra.Command) error {
	a.stderr = cmd.ErrOrStderr()

	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return systemError(err)
	}
	a.configDir = dir

	settings, err := config.Load(dir)
	if err != nil {
		return userError(err)
	}
	if err := settings.SetLogLevel(a.logLevel); err != nil {
		return userError(err)
	}
	a.settings = settings
	return nil
}

// resolvedDataDir applies flag > config.yaml > env > default.
func (a *app) resolvedDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
}

// resolvedSocket applies flag > config.yaml > env > <data_dir>/nuzlocke.sock.
func (a *app) resolvedSocket(dataDir string) (string, error) {
	return paths.ResolveSocket(a.socket, a.settings.Socket, dataDir)
}

// cliLogger logs text to stderr. Without --log-level, one-shot commands
// only report warnings so their output stays readable.
func (a *app) cliLogger() *slog.Logger {
	level := a.settings.Level()
	if a.logLevel == "" && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}
