// ====================================
// File: cmd/betsim/main.go
// ====================================
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/betsim/internal/config"
	"github.com/rovshanmuradov/betsim/internal/game"
	"github.com/rovshanmuradov/betsim/internal/logger"
	"github.com/rovshanmuradov/betsim/internal/report"
	"github.com/rovshanmuradov/betsim/internal/sim"
)

func main() {
	fs := pflag.NewFlagSet("betsim", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	configPath, _ := fs.GetString("config")
	cfg, err := config.LoadConfig(configPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betsim: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(cfg.DebugLogging, os.Stderr)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("Signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Fatal("Simulation failed", zap.Error(err))
	}
}

// run plays the configured batches and prints each one to out as soon as
// it finishes.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	driver, err := sim.NewDriver(game.DefaultParams(), cfg.SimOptions(), log)
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	results, err := driver.Run(ctx, func(r sim.BatchResult) error {
		return report.WriteBatch(out, r)
	})
	if err != nil {
		return err
	}

	if cfg.ExportDir == "" {
		return nil
	}
	format, err := report.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}
	_, err = report.NewExporter(log).Export(results, report.ExportOptions{
		Format:    format,
		OutputDir: cfg.ExportDir,
		Seed:      driver.Seed(),
	})
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	return nil
}
