package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tmoreno/studyplanner/internal/app"
	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/planner"
	"github.com/tmoreno/studyplanner/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studyplanner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := newLogger()

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	primary, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer primary.Close()

	adapter := store.NewAdapter(primary, store.NewMemoryKV(), cfg.SeedOnFirstRun, logger)

	p := planner.New(context.Background(), adapter, logger)

	program := tea.NewProgram(app.New(p), tea.WithAltScreen())

	// Notices published through the state container reach the UI as
	// messages, so actions triggered outside the event loop still
	// surface their outcome.
	unsubscribe := p.Container().Subscribe(planner.SliceNotice, func(value any) {
		notice, ok := value.(planner.Notice)
		if !ok {
			return
		}
		go program.Send(app.NoticeMsg{Notice: notice})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newLogger writes diagnostics to a file so log lines do not fight
// the terminal UI for the screen.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)

	dir, err := os.UserCacheDir()
	if err != nil {
		return logger
	}
	path := filepath.Join(dir, "studyplanner", "studyplanner.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logger
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logger
	}
	logger = log.New(f)
	logger.SetLevel(log.InfoLevel)
	return logger
}
