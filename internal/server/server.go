package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/config"
	"github.com/ricordo-game/ricordo/internal/frontend"
)

// ServerState is published on the started channel once the listener is up,
// mainly so tests and the CLI can learn the auto-assigned port.
type ServerState struct {
	Address string
}

// Run starts the server and blocks until the context is canceled. With an
// empty configured address it picks a free localhost port.
func Run(ctx context.Context, cfg *config.Config, started chan<- *ServerState) error {
	// Initialize global frontend state for server-side prerendering
	frontend.InitState()

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Board{} })

	h := &app.Handler{
		Name:        "Ricordo",
		Description: "A daily memory matching game",
		Styles: []string{
			"/web/css/pico.min.css",
			"/web/css/main.css",
		},
		// Game tuning reaches the WASM client through its environment.
		Env: map[string]string{
			"RICORDO_DAILY_PAIRS":     strconv.Itoa(cfg.Game.DailyPairs),
			"RICORDO_MATCH_DELAY":     cfg.Game.MatchDelay.String(),
			"RICORDO_MISMATCH_DELAY":  cfg.Game.MismatchDelay.String(),
			"RICORDO_GAME_OVER_DELAY": cfg.Game.GameOverDelay.String(),
			"RICORDO_ROLLOVER_POLL":   cfg.Game.RolloverPoll.String(),
		},
	}

	mux := http.NewServeMux()

	// Static assets: character art, sounds, css.
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(cfg.Server.WebDir))))

	// The go-app UI, including the compiled webassembly.
	mux.Handle("/", h)

	addr := cfg.Server.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	state := &ServerState{Address: ln.Addr().String()}
	if started != nil {
		started <- state
	}

	srv := &http.Server{Handler: mux}
	go func() {
		klog.Infof("Server started on %s", state.Address)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	klog.Info("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
