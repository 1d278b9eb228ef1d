package frontend

import (
	"sync"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/ricordo-game/ricordo/internal/game"
)

// autoStopAfter bounds how long a character catchphrase may play if
// nothing else stops it.
const autoStopAfter = 10 * time.Second

// BrowserAudio plays character sounds through HTML audio elements. It
// implements game.AudioPlayer: one character at a time, auto-stop after a
// bounded timeout, global mute that leaves play state alone.
type BrowserAudio struct {
	mu       sync.Mutex
	elements map[string]app.Value
	stop     *time.Timer
}

// NewBrowserAudio preloads one audio element per catalog entry. On the
// server (prerendering) it stays empty and every call is a no-op.
func NewBrowserAudio(catalog []game.Character) *BrowserAudio {
	b := &BrowserAudio{elements: make(map[string]app.Value)}
	if app.IsServer {
		return b
	}
	doc := app.Window().Get("document")
	for _, c := range catalog {
		audio := doc.Call("createElement", "audio")
		audio.Set("src", c.Sound)
		audio.Set("preload", "auto")
		b.elements[c.ID] = audio
	}
	klog.V(1).Infof("BrowserAudio: preloaded %d sounds", len(b.elements))
	return b
}

// Play stops whatever is playing, then starts the sound for the given
// character and arms the auto-stop.
func (b *BrowserAudio) Play(characterID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	audio, ok := b.elements[characterID]
	if !ok {
		return
	}
	b.stopAllLocked()

	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("catch", app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Errorf("Play: failed for %s: %v", characterID, args[0])
			return nil
		}))
	}

	b.stop = time.AfterFunc(autoStopAfter, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if el, ok := b.elements[characterID]; ok {
			el.Call("pause")
			el.Set("currentTime", 0)
		}
	})
}

// StopAll pauses and rewinds every sound.
func (b *BrowserAudio) StopAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopAllLocked()
}

func (b *BrowserAudio) stopAllLocked() {
	if b.stop != nil {
		b.stop.Stop()
		b.stop = nil
	}
	for _, audio := range b.elements {
		audio.Call("pause")
		audio.Set("currentTime", 0)
	}
}

// SetMuted applies a global mute to every element without altering play
// state.
func (b *BrowserAudio) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, audio := range b.elements {
		audio.Set("muted", muted)
	}
}
