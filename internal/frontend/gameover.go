package frontend

import (
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/game"
)

func (b *Board) shareMessage() string {
	gameURL := ""
	if !app.IsServer {
		gameURL = app.Window().URL().String()
	}
	return game.ShareMessage(b.gameDate, b.state.Moves, b.elapsed, gameURL)
}

func (b *Board) onCopyResults(ctx app.Context, e app.Event) {
	e.PreventDefault()
	clipboard := app.Window().Get("navigator").Get("clipboard")
	if !clipboard.Truthy() {
		klog.Warning("onCopyResults: clipboard API unavailable")
		return
	}
	promise := clipboard.Call("writeText", b.shareMessage())
	promise.Call("then", app.FuncOf(func(this app.Value, args []app.Value) any {
		ctx.Dispatch(func(ctx app.Context) {
			State.Copied = true
			State.Notify()
		})
		time.AfterFunc(2*time.Second, func() {
			ctx.Dispatch(func(ctx app.Context) {
				State.Copied = false
				State.Notify()
			})
		})
		return nil
	}))
}

func (b *Board) renderGameOver() app.UI {
	copyLabel := "Copy to Clipboard"
	if State.Copied {
		copyLabel = "Copied!"
	}

	return app.Div().Class("modal-overlay").Body(
		app.Article().Class("modal").Body(
			app.H2().Text("Bravissimo! 🎉"),
			app.Pre().Class("share-text").Text(b.shareMessage()),
			app.Div().Class("modal-actions").Body(
				app.Button().Text(copyLabel).OnClick(b.onCopyResults),
				app.Button().Class("secondary").Text("Play Again").OnClick(b.onRestart),
				app.A().Href("#").Text("Close").OnClick(b.onDismissGameOver),
			),
		),
	)
}
