package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/game"
)

// Board is the root component: the daily puzzle grid plus all surrounding
// chrome. It renders from a snapshot of the session state, refreshed
// whenever the session notifies a change.
type Board struct {
	app.Compo
	Error string

	state    game.GameState
	elapsed  int
	gameDate time.Time
}

func (b *Board) OnMount(ctx app.Context) {
	klog.Infof("Board: OnMount called")
	if err := State.EnsureSession(); err != nil {
		b.Error = fmt.Sprintf("Failed to start the game: %v", err)
		klog.Errorf("Board: %s", b.Error)
		return
	}
	b.refresh()

	State.Listeners["board"] = func() {
		ctx.Dispatch(func(ctx app.Context) {
			b.refresh()
		})
	}
}

func (b *Board) OnDismount() {
	klog.Infof("Board: OnDismount called")
	delete(State.Listeners, "board")
	if State.Session != nil {
		// Cancels every pending flip-back, match and game-over timer.
		State.Session.Teardown()
		State.Session = nil
	}
}

func (b *Board) refresh() {
	if State.Session == nil {
		return
	}
	b.state = State.Session.State()
	b.elapsed = State.Session.Elapsed()
	b.gameDate = State.Session.GameDate()
}

func (b *Board) onCardClick(positionID int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		State.Session.FlipCard(positionID)
	}
}

func (b *Board) onRestart(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Copied = false
	if err := State.Session.StartGame(); err != nil {
		klog.Errorf("Board: restart failed: %v", err)
	}
}

func (b *Board) onDismissGameOver(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Session.DismissGameOver()
}

func (b *Board) renderCard(card game.Card) app.UI {
	flipped := b.state.IsFlipped(card.PositionID)
	matched := b.state.IsMatched(card.PositionID)

	cell := app.Div().
		Class("card").
		DataSet("position", card.PositionID)
	if flipped || matched {
		face := app.Img().Src(card.Image).Alt(card.Name).Class("card-face")
		if matched {
			cell = cell.Class("card-matched")
		} else {
			cell = cell.Class("card-flipped")
		}
		return cell.Body(face, app.Span().Class("card-name").Text(card.Name))
	}

	return cell.Class("card-hidden").
		OnClick(b.onCardClick(card.PositionID)).
		Body(app.Span().Class("card-back").Text("?"))
}

func (b *Board) renderProgress() app.UI {
	totalPairs := len(b.state.Cards) / 2
	matchedPairs := len(b.state.Matched) / 2
	percent := 0
	if totalPairs > 0 {
		percent = matchedPairs * 100 / totalPairs
	}
	return app.Div().Class("progress-row").Body(
		app.Progress().Class("progress-bar").Attr("value", percent).Attr("max", 100),
		app.Span().Class("progress-label").
			Text(fmt.Sprintf("%d / %d pairs", matchedPairs, totalPairs)),
	)
}

func (b *Board) Render() app.UI {
	if b.Error != "" {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Game Error"),
				app.P().Style("color", "red").Text(b.Error),
			),
		)
	}

	if State == nil || State.Session == nil {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Dealing today's puzzle..."),
		)
	}

	theme := "light"
	if b.state.DarkMode {
		theme = "dark"
	}

	var cards []app.UI
	for _, card := range b.state.Cards {
		cards = append(cards, b.renderCard(card))
	}

	body := []app.UI{
		&TopBar{Moves: b.state.Moves, Elapsed: b.elapsed, GameDate: b.gameDate},
		b.renderProgress(),
		app.Div().Class("board-grid").Body(cards...),
	}
	if b.state.GameOver {
		body = append(body, b.renderGameOver())
	}
	if State.ShowInfo {
		body = append(body, b.renderInfoModal())
	}

	return app.Main().Class("container").DataSet("theme", theme).Body(body...)
}
