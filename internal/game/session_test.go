package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAudio records the session's audio calls.
type fakeAudio struct {
	mu     sync.Mutex
	played []string
	stops  int
	muted  bool
}

func (f *fakeAudio) Play(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, id)
}

func (f *fakeAudio) StopAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeAudio) SetMuted(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
}

func (f *fakeAudio) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

func (f *fakeAudio) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// testClock is a settable time source for rollover tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testDelays() Delays {
	return Delays{
		Match:        20 * time.Millisecond,
		Mismatch:     40 * time.Millisecond,
		GameOver:     20 * time.Millisecond,
		Tick:         5 * time.Millisecond,
		RolloverPoll: 10 * time.Millisecond,
	}
}

func newTestSession(t *testing.T, pairs int) (*Session, *fakeAudio) {
	t.Helper()
	audio := &fakeAudio{}
	clock := &testClock{now: time.Date(2025, time.April, 26, 10, 0, 0, 0, time.UTC)}
	s, err := NewSession(testCharacters(pairs), pairs, audio,
		WithDelays(testDelays()), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(s.Teardown)
	require.NoError(t, s.StartGame())
	return s, audio
}

// findPair returns the position ids of two cards sharing a character.
func findPair(t *testing.T, state GameState) (int, int) {
	t.Helper()
	for i, a := range state.Cards {
		for _, b := range state.Cards[i+1:] {
			if a.ID == b.ID {
				return a.PositionID, b.PositionID
			}
		}
	}
	t.Fatal("no pair in deck")
	return 0, 0
}

// findMismatch returns the position ids of two cards with different characters.
func findMismatch(t *testing.T, state GameState) (int, int) {
	t.Helper()
	for _, b := range state.Cards[1:] {
		if b.ID != state.Cards[0].ID {
			return state.Cards[0].PositionID, b.PositionID
		}
	}
	t.Fatal("no mismatching cards in deck")
	return 0, 0
}

func TestNewSessionInvalidCount(t *testing.T) {
	_, err := NewSession(testCharacters(3), 4, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestFlipPlaysCharacterSound(t *testing.T) {
	s, audio := newTestSession(t, 3)
	card := s.State().Cards[0]

	s.FlipCard(card.PositionID)

	audio.mu.Lock()
	defer audio.mu.Unlock()
	require.Len(t, audio.played, 1)
	assert.Equal(t, card.ID, audio.played[0])
}

func TestMatchTransition(t *testing.T) {
	s, audio := newTestSession(t, 3)
	a, b := findPair(t, s.State())

	s.FlipCard(a)
	s.FlipCard(b)

	// The move counts immediately, before the match delay.
	assert.Equal(t, 1, s.State().Moves)

	require.Eventually(t, func() bool {
		st := s.State()
		return st.IsMatched(a) && st.IsMatched(b) && len(st.Flipped) == 0
	}, time.Second, 2*time.Millisecond)

	assert.Equal(t, 1, s.State().Moves)
	// Matches leave the character sound playing.
	assert.Zero(t, audio.stopCount())
}

func TestMismatchTransition(t *testing.T) {
	s, audio := newTestSession(t, 3)
	a, b := findMismatch(t, s.State())

	s.FlipCard(a)
	s.FlipCard(b)
	assert.Equal(t, 1, s.State().Moves)

	require.Eventually(t, func() bool {
		return len(s.State().Flipped) == 0
	}, time.Second, 2*time.Millisecond)

	st := s.State()
	assert.Empty(t, st.Matched)
	assert.Equal(t, 1, st.Moves)
	assert.False(t, st.TimerActive, "mismatch stops the clock")
	assert.GreaterOrEqual(t, audio.stopCount(), 1, "mismatch silences the audio")
}

func TestThirdFlipIgnoredDuringEvaluation(t *testing.T) {
	s, audio := newTestSession(t, 3)
	st := s.State()
	a, b := findMismatch(t, st)

	s.FlipCard(a)
	s.FlipCard(b)

	var third int
	for _, c := range st.Cards {
		if c.PositionID != a && c.PositionID != b {
			third = c.PositionID
			break
		}
	}
	s.FlipCard(third)

	flipped := s.State().Flipped
	assert.Len(t, flipped, 2)
	assert.NotContains(t, flipped, third)
	assert.Equal(t, 2, audio.playCount(), "blocked flip must not play audio")
}

func TestCompletionSetsGameOver(t *testing.T) {
	s, _ := newTestSession(t, 2)

	solve(t, s)

	require.Eventually(t, func() bool {
		return s.State().GameOver
	}, time.Second, 2*time.Millisecond)

	// The clock is done once the game is over.
	elapsed := s.Elapsed()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, elapsed, s.Elapsed())
}

// solve flips every pair to completion, waiting out the match delays.
func solve(t *testing.T, s *Session) {
	t.Helper()
	st := s.State()
	byID := map[string][]int{}
	for _, c := range st.Cards {
		byID[c.ID] = append(byID[c.ID], c.PositionID)
	}
	for _, pair := range byID {
		s.FlipCard(pair[0])
		s.FlipCard(pair[1])
		require.Eventually(t, func() bool {
			return s.State().IsMatched(pair[0])
		}, time.Second, 2*time.Millisecond)
	}
}

func TestRestartScenario(t *testing.T) {
	s, _ := newTestSession(t, 3)
	st := s.State()
	a, b := findPair(t, st)

	s.ToggleDarkMode()
	wantDark := s.State().DarkMode

	s.FlipCard(a)
	s.FlipCard(b)
	require.Eventually(t, func() bool {
		return s.State().IsMatched(a)
	}, time.Second, 2*time.Millisecond)
	require.Equal(t, 1, s.State().Moves)

	require.NoError(t, s.StartGame())

	st = s.State()
	assert.Zero(t, st.Moves)
	assert.Empty(t, st.Matched)
	assert.Empty(t, st.Flipped)
	assert.False(t, st.GameOver)
	assert.True(t, st.TimerActive)
	assert.Len(t, st.Cards, 6)
	assert.Equal(t, wantDark, st.DarkMode, "dark mode survives restart")
}

func TestRestartCancelsPendingTransitions(t *testing.T) {
	s, _ := newTestSession(t, 3)
	a, b := findPair(t, s.State())

	s.FlipCard(a)
	s.FlipCard(b)
	// Restart before the match delay elapses: the pending match must not
	// fire against the new deck.
	require.NoError(t, s.StartGame())

	time.Sleep(100 * time.Millisecond)
	st := s.State()
	assert.Empty(t, st.Matched)
	assert.Zero(t, st.Moves)
}

func TestTeardownCancelsPendingTransitions(t *testing.T) {
	audio := &fakeAudio{}
	s, err := NewSession(testCharacters(3), 3, audio, WithDelays(testDelays()))
	require.NoError(t, err)
	require.NoError(t, s.StartGame())
	a, b := findMismatch(t, s.State())

	s.FlipCard(a)
	s.FlipCard(b)
	s.Teardown()

	time.Sleep(100 * time.Millisecond)
	// The pending mismatch was cancelled; the only StopAll is teardown's own.
	assert.Equal(t, 1, audio.stopCount())
	assert.Len(t, s.State().Flipped, 2)

	// Operations after teardown are no-ops.
	s.FlipCard(a)
	assert.Error(t, s.StartGame())
	s.Teardown() // idempotent
}

func TestElapsedClock(t *testing.T) {
	s, _ := newTestSession(t, 3)

	require.Eventually(t, func() bool {
		return s.Elapsed() >= 2
	}, time.Second, 2*time.Millisecond)

	// A mismatch freezes the clock until the next game.
	a, b := findMismatch(t, s.State())
	s.FlipCard(a)
	s.FlipCard(b)
	require.Eventually(t, func() bool {
		return !s.State().TimerActive
	}, time.Second, 2*time.Millisecond)

	frozen := s.Elapsed()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, s.Elapsed())

	require.NoError(t, s.StartGame())
	assert.Zero(t, s.Elapsed())
}

func TestDailyRollover(t *testing.T) {
	audio := &fakeAudio{}
	clock := &testClock{now: time.Date(2025, time.April, 26, 23, 59, 0, 0, time.UTC)}
	s, err := NewSession(testCharacters(3), 3, audio,
		WithDelays(testDelays()), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(s.Teardown)
	require.NoError(t, s.StartGame())

	// A lone flipped card marks the old game.
	s.FlipCard(s.State().Cards[0].PositionID)
	require.Len(t, s.State().Flipped, 1)

	clock.Advance(2 * time.Minute) // past midnight

	require.Eventually(t, func() bool {
		return len(s.State().Flipped) == 0
	}, time.Second, 2*time.Millisecond, "rollover should deal a fresh game")
}

func TestDailyDeckIsPinnedPerDate(t *testing.T) {
	clock := &testClock{now: time.Date(2025, time.April, 26, 8, 0, 0, 0, time.UTC)}
	s, err := NewSession(Catalog, 6, nil, WithDelays(testDelays()), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(s.Teardown)
	require.NoError(t, s.StartGame())

	want := map[string]int{
		"bobritto": 2, "patapim": 2, "lirili": 2,
		"tralalero": 2, "tungtung": 2, "bombardiro": 2,
	}
	got := map[string]int{}
	for _, c := range s.State().Cards {
		got[c.ID]++
	}
	assert.Equal(t, want, got)
}

func TestSnapshotQueries(t *testing.T) {
	s, _ := newTestSession(t, 3)
	a, b := findPair(t, s.State())

	s.FlipCard(a)
	// Predicates must be callable straight off the returned snapshot.
	assert.True(t, s.State().IsFlipped(a))
	assert.False(t, s.State().IsMatched(a))
	assert.False(t, s.State().Complete())

	s.FlipCard(b)
	require.Eventually(t, func() bool {
		return s.State().IsMatched(a) && s.State().IsMatched(b)
	}, time.Second, 2*time.Millisecond)
}

func TestRestartCancelsPendingGameOver(t *testing.T) {
	s, _ := newTestSession(t, 1)
	pair := s.State()
	s.FlipCard(pair.Cards[0].PositionID)
	s.FlipCard(pair.Cards[1].PositionID)

	// Wait for the match, then restart inside the game-over window.
	require.Eventually(t, func() bool {
		return s.State().Complete()
	}, time.Second, 2*time.Millisecond)
	require.NoError(t, s.StartGame())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, s.State().GameOver, "stale game-over timer fired against the new deck")
}

func TestFiredTimersPruned(t *testing.T) {
	s, _ := newTestSession(t, 3)
	a, b := findPair(t, s.State())

	s.FlipCard(a)
	s.FlipCard(b)
	require.Eventually(t, func() bool {
		return s.State().IsMatched(a)
	}, time.Second, 2*time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.pending, "fired timers must not linger for the rest of the game")
}

func TestGameDateFollowsRollover(t *testing.T) {
	clock := &testClock{now: time.Date(2025, time.April, 26, 23, 59, 0, 0, time.UTC)}
	s, err := NewSession(testCharacters(3), 3, nil,
		WithDelays(testDelays()), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(s.Teardown)
	require.NoError(t, s.StartGame())
	require.Equal(t, "2025-04-26", DateKey(s.GameDate()))

	clock.Advance(2 * time.Minute) // past midnight

	require.Eventually(t, func() bool {
		return DateKey(s.GameDate()) == "2025-04-27"
	}, time.Second, 2*time.Millisecond, "game date should track the rollover deal")
}

func TestDismissGameOver(t *testing.T) {
	s, _ := newTestSession(t, 1)
	solve(t, s)
	require.Eventually(t, func() bool {
		return s.State().GameOver
	}, time.Second, 2*time.Millisecond)

	s.DismissGameOver()
	assert.False(t, s.State().GameOver)
}

func TestOnChangeFires(t *testing.T) {
	s, _ := newTestSession(t, 2)
	var mu sync.Mutex
	fired := 0
	s.SetOnChange(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	s.FlipCard(s.State().Cards[0].PositionID)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired > 0
	}, time.Second, 2*time.Millisecond)
}
