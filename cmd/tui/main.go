package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/betsim/internal/config"
	"github.com/rovshanmuradov/betsim/internal/events"
	"github.com/rovshanmuradov/betsim/internal/game"
	"github.com/rovshanmuradov/betsim/internal/logger"
	"github.com/rovshanmuradov/betsim/internal/report"
	"github.com/rovshanmuradov/betsim/internal/sim"
	"github.com/rovshanmuradov/betsim/internal/ui"
)

type runResult struct {
	results []sim.BatchResult
	err     error
}

func main() {
	fs := pflag.NewFlagSet("betsim-tui", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	configPath, _ := fs.GetString("config")
	cfg, err := config.LoadConfig(configPath, fs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs go to a ring buffer rendered inside the view, never to the terminal.
	logBuffer := logger.NewLogBuffer(200)
	zlog, err := logger.NewBuffered(cfg.DebugLogging, logBuffer)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	bus := events.NewBus(zlog, 64)
	sender := ui.NewUpdateSender(cfg.Batches*2+8, zlog)
	sender.Attach(bus)
	defer sender.Close()

	driver, err := sim.NewDriver(game.DefaultParams(), cfg.SimOptions(), zlog, sim.WithEventBus(bus))
	if err != nil {
		log.Fatalf("Failed to create driver: %v", err)
	}

	done := make(chan runResult, 1)
	go func() {
		results, err := driver.Run(runCtx, nil)
		done <- runResult{results: results, err: err}
	}()

	model := ui.NewModel(sender.Messages(), logBuffer, cfg.Batches, cfg.TrialsPerBatch, cancelRun)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		zlog.Error("TUI error", zap.Error(err))
	}

	cancelRun()
	res := <-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = bus.Shutdown(shutdownCtx)

	// Leave the plain report on stdout once the screen is gone.
	for _, r := range res.results {
		if err := report.WriteBatch(os.Stdout, r); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	}
	if res.err != nil {
		fmt.Fprintf(os.Stderr, "simulation stopped: %v\n", res.err)
		os.Exit(1)
	}

	if cfg.ExportDir != "" {
		format, err := report.ParseFormat(cfg.ExportFormat)
		if err != nil {
			log.Fatalf("Invalid export format: %v", err)
		}
		path, err := report.NewExporter(zlog).Export(res.results, report.ExportOptions{
			Format:    format,
			OutputDir: cfg.ExportDir,
			Seed:      driver.Seed(),
		})
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Fprintf(os.Stderr, "results written to %s\n", path)
	}
}
