package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hamlet/config"
	"github.com/pthm-cable/hamlet/game"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/observer"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (1-10)")
	agents := flag.Int("agents", -1, "Founding villagers, 3-5 (-1 = use config)")
	observe := flag.String("observe", "", "Serve the websocket observer on this address, e.g. :8080")
	provider := flag.String("provider", "", "Gateway provider: scripted, openai, ollama, anthropic, googleai (empty = use config)")
	model := flag.String("model", "", "Gateway model name (empty = use config)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *agents >= 0 {
		cfg.Population.Initial = min(*agents, len(cfg.Agents))
	}
	if *provider != "" {
		cfg.Gateway.Provider = *provider
	}
	if *model != "" {
		cfg.Gateway.Model = *model
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gw, err := gateway.New(ctx, gateway.Options{
		Provider:    gateway.Provider(cfg.Gateway.Provider),
		Model:       cfg.Gateway.Model,
		BaseURL:     cfg.Gateway.BaseURL,
		Temperature: cfg.Gateway.Temperature,
		MaxTokens:   cfg.Gateway.MaxTokens,
	}, cfg.Gateway.APIKeyEnv, rngSeed)
	if err != nil {
		slog.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	var output *telemetry.OutputManager
	if *outputDir != "" {
		output, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	opts := game.Options{
		Config:        cfg,
		Gateway:       gateway.NewLimited(gw, cfg.Gateway.RatePerSec, cfg.Gateway.Burst),
		Seed:          rngSeed,
		LogStats:      *logStats,
		OutputManager: output,
	}

	if *headless {
		// Scripted runs use simulated time and go as fast as the host allows.
		// A real model answers in wall-clock time, so those runs are paced.
		provider := gateway.Provider(cfg.Gateway.Provider)
		realtime := provider != "" && provider != gateway.ProviderScripted
		var g *game.Game
		if !realtime {
			opts.Clock = game.SimulatedClock(time.Now(), cfg.Derived.TickDuration, &g)
		}
		g = game.NewGameWithOptions(opts)
		defer g.Close()
		g.SetStepsPerUpdate(*stepsPerUpdate)
		serveObserver(ctx, *observe, g, cfg)

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"provider", cfg.Gateway.Provider,
			"realtime", realtime,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		if err := g.RunHeadless(ctx, *maxTicks, realtime); err != nil {
			slog.Info("headless simulation stopped", "tick", g.Tick(), "reason", err)
			return
		}
		slog.Info("max ticks reached", "tick", g.Tick())
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Hamlet")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Close()
	g.SetStepsPerUpdate(*stepsPerUpdate)
	serveObserver(ctx, *observe, g, cfg)

	window.New(g, int32(cfg.Screen.Width), int32(cfg.Screen.Height)).Run(*maxTicks)
}

func serveObserver(ctx context.Context, addr string, g *game.Game, cfg *config.Config) {
	if addr == "" {
		return
	}
	hub := observer.NewHub(cfg.Observer.SendBuffer)
	g.AddSink(hub)
	go func() {
		if err := observer.Serve(ctx, addr, hub); err != nil {
			slog.Error("observer stopped", "error", err)
		}
	}()
}
