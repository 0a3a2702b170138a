// Package main is the entry point for the desert walk demo.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chosenoffset.com/desertwalk/internal/assets"
	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/game"
	"chosenoffset.com/desertwalk/internal/host"
	"chosenoffset.com/desertwalk/internal/render"
	ebitenrender "chosenoffset.com/desertwalk/internal/render/ebiten"
	"chosenoffset.com/desertwalk/internal/render/terminal"
	"chosenoffset.com/desertwalk/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "desertwalk.json", "path to a JSON config file")
	backend := flag.String("backend", config.BackendEbiten, "render backend: ebiten or terminal")
	debug := flag.Bool("debug", false, "draw physics bodies")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	// Flags win over file and environment when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	var (
		renderer render.Renderer
		inputMgr render.InputManager
		loader   render.ResourceLoader
		engine   render.Engine
	)
	switch cfg.Backend {
	case config.BackendTerminal:
		// Terminal log output would corrupt the screen
		log.SetOutput(logFile())
		input := terminal.NewInputManager()
		inputMgr = input
		loader = terminal.NewResourceLoader()
		engine = terminal.NewEngine(input, cfg.Map.TileSize)
	default:
		renderer = ebitenrender.NewRenderer()
		inputMgr = ebitenrender.NewInputManager()
		loader = ebitenrender.NewResourceLoader()
		engine = ebitenrender.NewEngine()
	}

	fetcher := assets.NewFetcher(cfg.Assets.Retries)
	scene := game.New(cfg, renderer, inputMgr, loader, fetcher)
	manager := game.NewManager(scene)

	log.Printf("Session %s", telemetry.SessionID)
	if err := host.New(cfg, engine, manager).Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// logFile opens desertwalk.log for the terminal backend, falling back to
// discarding log output.
func logFile() *os.File {
	f, err := os.OpenFile("desertwalk.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		f, _ = os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return f
}
