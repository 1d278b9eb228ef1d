package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/game"
)

// GlobalClientState owns the session, the browser audio and the UI-only
// flags that must survive component re-renders.
type GlobalClientState struct {
	Session *game.Session
	Audio   *BrowserAudio

	// UI state (persistent across re-renders)
	Muted    bool
	ShowInfo bool
	Copied   bool

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

// InitState creates the global state if needed. Called by both the WASM
// entry point and the server (for prerendering).
func InitState() {
	if State != nil {
		klog.V(1).Infof("InitState: state already exists")
		return
	}
	klog.V(1).Infof("InitState: creating new state")
	State = &GlobalClientState{
		Listeners: make(map[string]func()),
	}
}

// EnsureSession lazily creates the game session on first mount in the
// browser. Prerendering on the server never reaches this.
func (s *GlobalClientState) EnsureSession() error {
	if s.Session != nil {
		return nil
	}

	s.Audio = NewBrowserAudio(game.Catalog)
	sess, err := game.NewSession(game.Catalog, envInt("RICORDO_DAILY_PAIRS", game.DefaultDailyCount),
		s.Audio, game.WithDelays(envDelays()))
	if err != nil {
		return err
	}
	s.Session = sess
	klog.Infof("EnsureSession: session %s created", sess.ID())

	sess.SetOnChange(s.Notify)
	return sess.StartGame()
}

// ToggleMute flips the global mute without touching play state.
func (s *GlobalClientState) ToggleMute() {
	s.Muted = !s.Muted
	klog.Infof("ToggleMute: muted is now %v", s.Muted)
	if s.Session != nil {
		s.Session.SetMuted(s.Muted)
	}
	s.Notify()
}

func (s *GlobalClientState) Notify() {
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// envDelays assembles the session timings from the handler environment,
// falling back to the defaults for anything unset or unparsable.
func envDelays() game.Delays {
	d := game.DefaultDelays()
	d.Match = envDuration("RICORDO_MATCH_DELAY", d.Match)
	d.Mismatch = envDuration("RICORDO_MISMATCH_DELAY", d.Mismatch)
	d.GameOver = envDuration("RICORDO_GAME_OVER_DELAY", d.GameOver)
	d.RolloverPoll = envDuration("RICORDO_ROLLOVER_POLL", d.RolloverPoll)
	return d
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := app.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		klog.Warningf("ignoring %s=%q: %v", key, raw, err)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := app.Getenv(key)
	if raw == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n < 1 {
		klog.Warningf("ignoring %s=%q: %v", key, raw, err)
		return fallback
	}
	return n
}
