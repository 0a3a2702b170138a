// Package web serves the WebAssembly build of the demo.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config controls the web host.
type Config struct {
	// StaticDir holds wasm_exec.js, the .wasm build and optional assets.
	StaticDir      string
	WasmFile       string
	Title          string
	AllowedOrigins []string
}

// DefaultConfig returns the web host defaults.
func DefaultConfig() Config {
	return Config{
		StaticDir:      "web",
		WasmFile:       "desertwalk.wasm",
		Title:          "Desert Walk",
		AllowedOrigins: []string{"*"},
	}
}

// gamePage hosts the wasm build. The canvas ebiten creates is moved into
// #game-container so the container's sizing applies to it.
var gamePage = template.Must(template.New("game").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>html, body { margin: 0; height: 100%; background: #000; } #game-container { width: 100%; height: 100%; } #game-container canvas { display: block; width: 100%; height: 100%; }</style>
</head>
<body>
<div id="game-container"></div>
<script src="/static/wasm_exec.js"></script>
<script>
// ebiten appends its canvas to body; keep it inside the container.
const container = document.getElementById("game-container");
new MutationObserver((records, observer) => {
  const canvas = document.querySelector("body > canvas");
  if (canvas) {
    container.appendChild(canvas);
    observer.disconnect();
  }
}).observe(document.body, { childList: true });
const go = new Go();
WebAssembly.instantiateStreaming(fetch({{.WasmURL}}), go.importObject).then((result) => {
  go.run(result.instance);
});
</script>
</body>
</html>
`))

// NewRouter builds the router with middlewares and routes.
func NewRouter(cfg Config) (chi.Router, error) {
	info, err := os.Stat(cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("static directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static directory: %s is not a directory", cfg.StaticDir)
	}

	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	page := struct {
		Title   string
		WasmURL string
	}{cfg.Title, "/static/" + cfg.WasmFile}
	r.Get("/game", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := gamePage.Execute(w, page); err != nil {
			log.Printf("game page: %v", err)
		}
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/game", http.StatusFound)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	return r, nil
}

// Serve runs an HTTP server on addr until ctx is done, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server started on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Println("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
