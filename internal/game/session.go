package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Delays holds every scheduled-callback interval the session uses. The
// match/mismatch asymmetry is intentional UX: a short celebration for a
// match, a long dwell for the player to memorize a mismatch.
type Delays struct {
	Match        time.Duration // reveal-to-matched
	Mismatch     time.Duration // reveal-to-hidden
	GameOver     time.Duration // last-match-to-game-over
	Tick         time.Duration // elapsed clock granularity
	RolloverPoll time.Duration // daily date-change check
}

// DefaultDelays returns the production timings.
func DefaultDelays() Delays {
	return Delays{
		Match:        300 * time.Millisecond,
		Mismatch:     2000 * time.Millisecond,
		GameOver:     1200 * time.Millisecond,
		Tick:         time.Second,
		RolloverPoll: time.Minute,
	}
}

// Session owns one player's game: the state machine, the deck source, the
// audio player, and every outstanding timer. All mutation is serialized
// through one mutex; timer callbacks are bound to the game generation that
// scheduled them, so a restart or teardown invalidates anything still
// pending. Teardown cancels everything the session ever scheduled.
type Session struct {
	mu         sync.Mutex
	id         string
	catalog    []Character
	dailyCount int
	audio      AudioPlayer
	delays     Delays
	now        func() time.Time

	state    GameState
	elapsed  int       // whole seconds on the gated clock
	playedOn string    // DateKey captured at last game start
	playedAt time.Time // clock reading at last game start

	generation int
	pending    []*time.Timer
	done       chan struct{}
	closed     bool

	onChange func()
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithDelays overrides the default timings. Tests run on millisecond scales.
func WithDelays(d Delays) Option {
	return func(s *Session) { s.delays = d }
}

// WithClock overrides the session's notion of "now". The daily selection
// and the rollover poll both go through it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(s *Session) { s.state.DarkMode = dark }
}

// NewSession validates the configuration and returns a session ready for
// StartGame. The daily count is checked here so a misconfiguration fails
// loudly at startup instead of surfacing mid-game.
func NewSession(catalog []Character, dailyCount int, audio AudioPlayer, opts ...Option) (*Session, error) {
	if audio == nil {
		audio = NopAudio{}
	}
	s := &Session{
		id:         uuid.NewString(),
		catalog:    catalog,
		dailyCount: dailyCount,
		audio:      audio,
		delays:     DefaultDelays(),
		now:        time.Now,
		done:       make(chan struct{}),
	}
	s.state.DarkMode = true
	for _, opt := range opts {
		opt(s)
	}
	if _, err := SelectDaily(catalog, s.now(), dailyCount); err != nil {
		return nil, err
	}
	go s.loop()
	return s, nil
}

// ID returns the session's identifier, used only for log correlation.
func (s *Session) ID() string { return s.id }

// SetOnChange registers a callback fired after every state change. It runs
// without the session lock held.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// StartGame deals a fresh daily deck and resets the game. Any transition
// still pending from the previous deal is invalidated. DarkMode and the
// audio player survive restarts.
func (s *Session) StartGame() error {
	today := s.now()
	daily, err := SelectDaily(s.catalog, today, s.dailyCount)
	if err != nil {
		return err
	}
	deck := BuildDeck(daily)
	key := DateKey(today)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("session %s is torn down", s.id)
	}
	s.generation++
	s.cancelPendingLocked()
	s.state.startGame(deck)
	s.elapsed = 0
	s.playedOn = key
	s.playedAt = today
	s.mu.Unlock()

	klog.Infof("session %s: game #%d (%s), %d pairs", s.id, GameNumber(today), key, len(daily))
	s.notify()
	return nil
}

// FlipCard reveals the card at positionID and plays its character sound.
// Flips that violate a precondition (already flipped, already matched, two
// cards pending, game over) are silent no-ops. The second flip of a turn
// triggers the evaluation: the move counts immediately, the outcome lands
// after the match or mismatch delay.
func (s *Session) FlipCard(positionID int) {
	s.mu.Lock()
	if s.closed || s.state.GameOver || !s.state.flipCard(positionID) {
		s.mu.Unlock()
		return
	}
	card, ok := s.state.cardAt(positionID)
	if !ok {
		s.mu.Unlock()
		klog.Errorf("session %s: flipped position %d is not in the deck", s.id, positionID)
		panic(fmt.Sprintf("game state desynchronized: position %d missing from deck", positionID))
	}
	s.audio.Play(card.ID)
	if len(s.state.Flipped) == 2 {
		s.evaluateLocked()
	}
	s.mu.Unlock()
	s.notify()
}

// evaluateLocked runs once per completed two-card flip, with the lock held.
func (s *Session) evaluateLocked() {
	first, second := s.state.Flipped[0], s.state.Flipped[1]
	s.state.incrementMoves()

	a, okA := s.state.cardAt(first)
	b, okB := s.state.cardAt(second)
	if !okA || !okB {
		klog.Errorf("session %s: flipped pair (%d,%d) cannot be resolved", s.id, first, second)
		panic(fmt.Sprintf("game state desynchronized: pair (%d,%d) missing from deck", first, second))
	}

	if a.ID == b.ID {
		s.scheduleLocked(s.delays.Match, func() {
			s.state.matchCards(first, second)
			if s.state.Complete() {
				s.scheduleLocked(s.delays.GameOver, func() {
					s.state.setGameOver(true)
				})
			}
		})
		return
	}
	s.scheduleLocked(s.delays.Mismatch, func() {
		s.audio.StopAll()
		s.state.resetFlipped()
	})
}

// scheduleLocked arms a delayed transition bound to the current game
// generation. The callback re-checks the generation under the lock, so a
// restart or teardown between scheduling and firing makes it a no-op.
// Fired timers drop out of pending so the slice stays bounded by the
// number of in-flight delays.
func (s *Session) scheduleLocked(d time.Duration, fn func()) {
	gen := s.generation
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		s.removePendingLocked(t)
		if s.closed || gen != s.generation {
			s.mu.Unlock()
			return
		}
		fn()
		s.mu.Unlock()
		s.notify()
	})
	s.pending = append(s.pending, t)
}

func (s *Session) removePendingLocked(t *time.Timer) {
	for i, p := range s.pending {
		if p == t {
			s.pending[i] = s.pending[len(s.pending)-1]
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
}

func (s *Session) cancelPendingLocked() {
	for _, t := range s.pending {
		t.Stop()
	}
	s.pending = nil
}

// ToggleDarkMode flips the theme. Cosmetic, survives restarts.
func (s *Session) ToggleDarkMode() {
	s.mu.Lock()
	s.state.toggleDarkMode()
	s.mu.Unlock()
	s.notify()
}

// SetMuted applies a global mute to the audio player.
func (s *Session) SetMuted(muted bool) {
	s.audio.SetMuted(muted)
}

// DismissGameOver hides the game-over screen without starting a new game.
func (s *Session) DismissGameOver() {
	s.mu.Lock()
	s.state.setGameOver(false)
	s.mu.Unlock()
	s.notify()
}

// State returns a copy of the current game state.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// GameDate returns the date the current deck was dealt for. Header and
// share text must render from this, not from the wall clock: around
// midnight the two can disagree until the rollover poll deals the new
// puzzle.
func (s *Session) GameDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playedAt
}

// Elapsed returns the whole seconds accumulated by the gated clock.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Teardown cancels every outstanding timer, stops the background loop and
// silences the audio. Safe to call more than once.
func (s *Session) Teardown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancelPendingLocked()
	close(s.done)
	s.mu.Unlock()

	s.audio.StopAll()
	klog.Infof("session %s: torn down", s.id)
}

// loop runs the two periodic concerns for the session's lifetime: the
// elapsed clock (gated by TimerActive) and the daily rollover poll. Both
// are best-effort ticks, not precise schedules.
func (s *Session) loop() {
	tick := time.NewTicker(s.delays.Tick)
	defer tick.Stop()
	roll := time.NewTicker(s.delays.RolloverPoll)
	defer roll.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-tick.C:
			if s.advanceClock() {
				s.notify()
			}
		case <-roll.C:
			if s.dateChanged() {
				klog.Infof("session %s: date rolled over, dealing today's puzzle", s.id)
				if err := s.StartGame(); err != nil {
					klog.Errorf("session %s: rollover restart failed: %v", s.id, err)
				}
			}
		}
	}
}

func (s *Session) advanceClock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.state.TimerActive || s.state.GameOver {
		return false
	}
	s.elapsed++
	return true
}

func (s *Session) dateChanged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.playedOn != "" && DateKey(s.now()) != s.playedOn
}

// notify fires the change callback without holding the lock.
func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
