package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/ricordo-game/ricordo/internal/game"
)

// TopBar shows the stats and the control buttons. GameDate is the date the
// current deck was dealt for, which around midnight is not the wall clock.
type TopBar struct {
	app.Compo
	Moves    int
	Elapsed  int
	GameDate time.Time
}

func (t *TopBar) onToggleMute(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleMute()
}

func (t *TopBar) onToggleDarkMode(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if State.Session != nil {
		State.Session.ToggleDarkMode()
	}
}

func (t *TopBar) onToggleInfo(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ShowInfo = !State.ShowInfo
	State.Notify()
}

func (t *TopBar) Render() app.UI {
	muteIcon := "🔊"
	if State.Muted {
		muteIcon = "🔇"
	}

	return app.Nav().Class("topbar").Body(
		app.Ul().Body(
			app.Li().Body(
				app.Span().Class("stat").Text(fmt.Sprintf("🎮 %d", t.Moves)),
			),
			app.Li().Body(
				app.Span().Class("stat").Text("⏱️ "+game.FormatTime(t.Elapsed)),
			),
		),
		app.Ul().Body(
			app.Li().Body(
				app.H1().Class("title").Text(fmt.Sprintf("Ricordo #%d", game.GameNumber(t.GameDate))),
			),
		),
		app.Ul().Body(
			app.Li().Body(
				app.A().Href("#").OnClick(t.onToggleInfo).Text("ℹ️"),
			),
			app.Li().Body(
				app.A().Href("#").OnClick(t.onToggleMute).Text(muteIcon),
			),
			app.Li().Body(
				app.A().Href("#").OnClick(t.onToggleDarkMode).Text("🌓"),
			),
		),
	)
}
