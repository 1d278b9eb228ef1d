package game

import (
	"fmt"
	"strings"
	"time"
)

// Score combines moves and elapsed seconds into the share score. Lower is
// better: ten points per move plus half a point per second.
func Score(moves, elapsedSeconds int) int {
	return moves*10 + elapsedSeconds/2
}

// Stars maps a score to its star rating for the share message.
func Stars(score int) string {
	switch {
	case score < 100:
		return "⭐⭐⭐⭐⭐"
	case score < 150:
		return "⭐⭐⭐⭐"
	case score < 200:
		return "⭐⭐⭐"
	case score < 250:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

// FormatTime renders whole seconds as mm:ss.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ShareMessage builds the copy-to-clipboard result text for a finished
// game, Wordle-style: puzzle number, date, time, moves, score and stars.
func ShareMessage(t time.Time, moves, elapsedSeconds int, gameURL string) string {
	score := Score(moves, elapsedSeconds)
	var sb strings.Builder
	fmt.Fprintf(&sb, "🇮🇹 Ricordo #%d (%s)\n", GameNumber(t), DateString(t))
	fmt.Fprintf(&sb, "⏱️ Time: %s\n", FormatTime(elapsedSeconds))
	fmt.Fprintf(&sb, "🎮 Moves: %d\n", moves)
	fmt.Fprintf(&sb, "🏆 Score: %d\n", score)
	sb.WriteString(Stars(score))
	if gameURL != "" {
		fmt.Fprintf(&sb, "\n\nPlay today's challenge: %s", gameURL)
	}
	return sb.String()
}
