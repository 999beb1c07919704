package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/config"
	"github.com/sadopc/clock/internal/notify"
	"github.com/sadopc/clock/internal/store"
	"github.com/sadopc/clock/internal/tui"
)

func main() {
	defaultCfg, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfgPath := flag.String("config", defaultCfg, "path to config.yaml")
	dbPath := flag.String("db", defaultDB, "path to the history database")
	headless := flag.Bool("headless", false, "run without the TUI and log transitions to stderr")
	sessionLen := flag.Int("session", clock.DefaultSessionLength, "session length in minutes (headless)")
	breakLen := flag.Int("break", clock.DefaultBreakLength, "break length in minutes (headless)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if *headless {
		err = runHeadless(cfg, s, *sessionLen, *breakLen)
	} else {
		err = runTUI(cfg, *cfgPath, s)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "clock",
		Level:           cfg.Level(),
	})
}

func runTUI(cfg config.Config, cfgPath string, s *store.Store) error {
	// The terminal belongs to Bubble Tea, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(config.LogPath(cfgPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger := newLogger(f, cfg)

	app := tui.NewApp(tui.Options{
		Store:      s,
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("starting", "config", cfgPath)
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func runHeadless(cfg config.Config, s *store.Store, sessionLen, breakLen int) error {
	logger := newLogger(os.Stderr, cfg)

	history := notify.NewHistory(s, func(err error) {
		logger.Error("history write failed", "err", err)
	})
	bell := notify.NewBell(os.Stdout)
	m := clock.New(notify.Multi(
		notify.NewLogger(logger),
		notify.When(func() bool { return cfg.Bell }, bell),
		notify.When(func() bool { return cfg.History }, history),
	))
	m.AdjustLength(clock.TargetSession, sessionLen-clock.DefaultSessionLength)
	m.AdjustLength(clock.TargetBreak, breakLen-clock.DefaultBreakLength)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := clock.NewRunner(m, clock.WithOnTick(func(st clock.State) {
		logger.Debug("tick", "phase", st.Phase, "remaining", clock.FormatDisplay(st.Remaining))
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	if err := r.Do(ctx, (*clock.Machine).ToggleRunning); err != nil {
		<-errCh
		return nil
	}

	err := <-errCh
	if errors.Is(err, context.Canceled) {
		// Record the stop so the history shows where the run ended.
		m.ToggleRunning()
		return nil
	}
	return err
}
