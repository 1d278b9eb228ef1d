package game

// AudioPlayer is the session's contract with whatever plays character
// sounds. Only one character plays at a time: Play stops the current sound
// before starting the requested one, and implementations auto-stop a sound
// after a bounded timeout (10s) if nothing else stops it first.
type AudioPlayer interface {
	// Play starts the sound for the given character id.
	Play(characterID string)
	// StopAll pauses and rewinds every sound.
	StopAll()
	// SetMuted applies a global mute without altering play state.
	SetMuted(muted bool)
}

// NopAudio is an AudioPlayer that does nothing. Used during server-side
// prerendering and wherever sound is unavailable.
type NopAudio struct{}

func (NopAudio) Play(string)   {}
func (NopAudio) StopAll()      {}
func (NopAudio) SetMuted(bool) {}
