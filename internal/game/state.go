package game

import "slices"

// GameState is the authoritative in-memory record of one game. There is no
// separate mode enum: behavior is determined entirely by the combination of
// Flipped/Matched/GameOver, mutated only through the guarded transitions
// below. Precondition violations are silent no-ops, because the UI keeps
// dispatching actions during animation windows.
type GameState struct {
	Cards       []Card `json:"cards"`
	Flipped     []int  `json:"flipped"`      // position ids, at most two
	Matched     []int  `json:"matched"`      // position ids, grows pairwise
	Moves       int    `json:"moves"`        // one per completed comparison
	GameOver    bool   `json:"game_over"`
	TimerActive bool   `json:"timer_active"`
	DarkMode    bool   `json:"dark_mode"`
}

// startGame replaces the deck and resets everything except DarkMode, which
// is cosmetic and survives restarts.
func (s *GameState) startGame(deck []Card) {
	s.Cards = deck
	s.Flipped = nil
	s.Matched = nil
	s.Moves = 0
	s.GameOver = false
	s.TimerActive = true
}

// flipCard reveals the card at the given position. Reports whether the flip
// actually happened: already-flipped, already-matched and third-card flips
// are all no-ops. The third-card gate is load-bearing: it keeps the
// two-card evaluation window atomic from the player's perspective.
func (s *GameState) flipCard(positionID int) bool {
	if len(s.Flipped) >= 2 {
		return false
	}
	if s.IsFlipped(positionID) || s.IsMatched(positionID) {
		return false
	}
	s.Flipped = append(s.Flipped, positionID)
	return true
}

// incrementMoves counts one completed two-card comparison.
func (s *GameState) incrementMoves() {
	s.Moves++
}

// matchCards records a successful comparison: both position ids move to
// Matched together, and the flip window clears.
func (s *GameState) matchCards(a, b int) {
	if !s.IsFlipped(a) || !s.IsFlipped(b) {
		return
	}
	s.Matched = append(s.Matched, a, b)
	s.Flipped = nil
}

// resetFlipped hides a mismatched pair again. It also stops the elapsed
// clock; nothing restarts it short of a fresh game. That asymmetry is
// observed behavior and is preserved on purpose.
func (s *GameState) resetFlipped() {
	s.Flipped = nil
	s.TimerActive = false
}

// setGameOver flags the terminal state. Only valid with true once every
// card is matched; clearing it is how the game-over modal is dismissed.
func (s *GameState) setGameOver(over bool) {
	if over && len(s.Matched) != len(s.Cards) {
		return
	}
	s.GameOver = over
}

func (s *GameState) toggleDarkMode() {
	s.DarkMode = !s.DarkMode
}

// IsFlipped reports whether the card at positionID is currently revealed
// pending evaluation. Value receiver so snapshots can be queried directly.
func (s GameState) IsFlipped(positionID int) bool {
	return slices.Contains(s.Flipped, positionID)
}

// IsMatched reports whether the card at positionID belongs to a solved pair.
func (s GameState) IsMatched(positionID int) bool {
	return slices.Contains(s.Matched, positionID)
}

// Complete reports whether every card on the board has been matched.
func (s GameState) Complete() bool {
	return len(s.Cards) > 0 && len(s.Matched) == len(s.Cards)
}

// cardAt resolves a position id to its card. The second result is false if
// the id does not exist in the deck, which callers must treat as a broken
// invariant rather than a normal miss.
func (s GameState) cardAt(positionID int) (Card, bool) {
	for _, c := range s.Cards {
		if c.PositionID == positionID {
			return c, true
		}
	}
	return Card{}, false
}

// clone returns a deep copy safe to hand outside the session lock.
func (s *GameState) clone() GameState {
	out := *s
	out.Cards = slices.Clone(s.Cards)
	out.Flipped = slices.Clone(s.Flipped)
	out.Matched = slices.Clone(s.Matched)
	return out
}
