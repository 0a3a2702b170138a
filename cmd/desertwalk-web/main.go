// Package main serves the WebAssembly build of the desert walk demo.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chosenoffset.com/desertwalk/internal/web"
)

func main() {
	defaults := web.DefaultConfig()
	addr := flag.String("addr", ":8080", "listen address")
	staticDir := flag.String("static", defaults.StaticDir, "directory holding wasm_exec.js and the .wasm build")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg := defaults
	cfg.StaticDir = *staticDir
	if dir := os.Getenv("STATIC_DIR"); dir != "" && !isFlagSet("static") {
		cfg.StaticDir = dir
	}

	r, err := web.NewRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.Serve(ctx, *addr, r); err != nil {
		log.Fatalf("ListenAndServe: %v", err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
