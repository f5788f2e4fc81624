// Package cmd defines the mynotion command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mynotion/internal/config"
	"mynotion/internal/repo"
	"mynotion/internal/store"
	gitsync "mynotion/internal/sync"
	"mynotion/internal/ui"
	"mynotion/internal/watch"
)

var (
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mynotion",
	Short: "Personal productivity dashboard",
	Long:  "Tasks, habits, links, and notes in one keyboard-driven terminal dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	rootCmd.Version = versionString()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(taskCmd, habitCmd, linkCmd, noteCmd,
		statsCmd, exportCmd, importCmd, storageCmd, backupCmd, restoreCmd)
}

// env bundles everything a command needs to touch the data layer.
type env struct {
	cfg    *config.Config
	store  *store.Store
	repos  *repo.Set
	logger *slog.Logger
}

// openEnv loads configuration and opens the store. Every subcommand starts
// here.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	logger := newLogger(cfg.Verbose, os.Stderr)

	st, err := store.New(cfg.GetDataDir(), logger)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		store:  st,
		repos:  repo.NewSet(st),
		logger: logger,
	}, nil
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// runDashboard starts the file watcher and the TUI.
func runDashboard() error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	// TUI logging goes to a file so it cannot tear the screen.
	if e.cfg.Verbose {
		logPath := filepath.Join(e.store.Dir(), "mynotion.log")
		if f, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
			defer f.Close()
			e.logger = newLogger(true, f)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifier, err := watch.New(e.store.Dir(), e.logger)
	if err != nil {
		// The dashboard still works without live reload.
		e.logger.Warn("file watcher unavailable", "error", err)
		notifier = nil
	}
	if notifier != nil {
		defer notifier.Close()
		go func() {
			if werr := notifier.Start(ctx); werr != nil {
				e.logger.Error("watcher stopped", "error", werr)
			}
		}()
	}

	var git *gitsync.GitSync
	if e.cfg.Sync.Enabled && gitsync.IsGitInstalled() {
		git = gitsync.New(e.store.Dir(), syncConfig(e))
		defer git.Flush()
	}

	e.store.SetOnWrite(func(key string) {
		if notifier != nil {
			notifier.Suppress(key)
		}
		if git != nil {
			git.OnKeySaved(key)
		}
	})

	app := ui.New(e.store, e.repos, notifier, e.cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
