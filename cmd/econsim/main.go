// Command econsim runs the Tradewinds economy simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/clock"
	"github.com/talgya/tradewinds/internal/config"
	"github.com/talgya/tradewinds/internal/econ"
	"github.com/talgya/tradewinds/internal/news"
	"github.com/talgya/tradewinds/internal/notify"
	"github.com/talgya/tradewinds/internal/persistence"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("catalog ready", "items", cat.Len())

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	economy := econ.New(logger, cat, cfg.Seed)
	economy.Subscribe(func(n notify.Notification) {
		fmt.Printf("[%s] %s\n", clock.SimTime(n.Minute), n.Message)
	})

	restored, err := db.Load(economy)
	if err != nil {
		slog.Error("failed to restore state", "error", err)
		os.Exit(1)
	}
	if !restored {
		slog.Info("no saved state found, seeding new world", "seed", cfg.Seed)
		economy.SeedDefaultWorld()
		if err := db.Save(economy); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	runner := clock.NewRunner()
	runner.Minute = economy.Now()
	runner.Speed = cfg.Speed
	runner.Interval = cfg.TickInterval
	runner.OnMinute = func(int64) {
		economy.Tick(1)
	}
	lastSave := economy.Now()
	runner.OnDay = func(minute int64) {
		fmt.Println(news.Digest(economy))
		if minute-lastSave >= cfg.AutosaveMinutes {
			if err := db.Save(economy); err != nil {
				slog.Error("autosave failed", "error", err)
			} else {
				lastSave = minute
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	if restored {
		fmt.Printf("Resuming from %s\n", clock.SimTime(economy.Now()))
	}
	fmt.Println("Markets are open... (Ctrl+C to stop)")

	runner.Run()

	slog.Info("final save...")
	if err := db.Save(economy); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. State saved.")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
