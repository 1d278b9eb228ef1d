package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func (b *Board) onCloseInfo(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ShowInfo = false
	State.Notify()
}

func (b *Board) renderInfoModal() app.UI {
	return app.Div().Class("modal-overlay").Body(
		app.Article().Class("modal").Body(
			app.H2().Text("How to play"),
			app.P().Text("Flip two cards at a time to find matching characters. "+
				"Matched pairs stay face up; mismatches flip back after a moment."),
			app.P().Text("Everyone gets the same characters each day, but your board "+
				"layout is your own. Finish in as few moves as you can and share your score."),
			app.P().Text("A new puzzle is dealt every day at midnight."),
			app.Div().Class("modal-actions").Body(
				app.Button().Text("Got it").OnClick(b.onCloseInfo),
			),
		),
	)
}
