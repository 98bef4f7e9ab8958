package tui

import (
	"sync"

	"github.com/vovakirdan/tui-pet/internal/pet"
)

// noteFrames is how long a music note stays on screen.
const noteFrames = 6

// flashFrames maps haptic strength to how long the pet shakes.
var flashFrames = map[pet.HapticStyle]int{
	pet.HapticSelection: 1,
	pet.HapticLight:     2,
	pet.HapticMedium:    4,
}

// Feedback implements pet.Feedback for a terminal: haptics become a short
// shake of the pet, sounds show a note and ring the bell.
// Nothing is written here; the bell is emitted with the next frame so the
// renderer stays the only writer to the terminal.
type Feedback struct {
	mu    sync.Mutex
	style pet.HapticStyle
	shake int
	notes int
	ring  bool
	bell  bool
}

// FeedbackState is what the scene needs to draw the current cues.
type FeedbackState struct {
	Style pet.HapticStyle // Active haptic style, HapticNone when idle
	Note  bool            // Whether to draw a music note
	Bell  bool            // Whether this frame rings the terminal bell
}

// NewFeedback creates a terminal feedback sink. With bell false sounds only
// show the note.
func NewFeedback(bell bool) *Feedback {
	return &Feedback{bell: bell}
}

// Haptic starts a shake whose length depends on the style.
func (f *Feedback) Haptic(style pet.HapticStyle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.style = style
	f.shake = flashFrames[style]
}

// Sound rings the bell and shows a note.
func (f *Feedback) Sound() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = noteFrames
	f.ring = f.bell
}

// Advance consumes one frame and returns the cues to draw for it.
func (f *Feedback) Advance() FeedbackState {
	f.mu.Lock()
	defer f.mu.Unlock()

	var st FeedbackState
	if f.shake > 0 {
		st.Style = f.style
		f.shake--
	}
	if f.notes > 0 {
		st.Note = true
		f.notes--
	}
	// Sounds between two frames ring once
	st.Bell = f.ring
	f.ring = false
	return st
}

var _ pet.Feedback = (*Feedback)(nil)
