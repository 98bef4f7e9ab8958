package pet

// HapticStyle is the strength of the tactile cue for an action.
type HapticStyle int

const (
	HapticNone HapticStyle = iota
	HapticSelection
	HapticLight
	HapticMedium
)

// String returns a human-readable name for the style.
func (h HapticStyle) String() string {
	switch h {
	case HapticSelection:
		return "selection"
	case HapticLight:
		return "light"
	case HapticMedium:
		return "medium"
	default:
		return "none"
	}
}

// Feedback receives fire-and-forget audio and haptic cues.
// Implementations must not block; no pet logic depends on them.
type Feedback interface {
	Haptic(style HapticStyle)
	Sound()
}

// NopFeedback discards every cue.
type NopFeedback struct{}

func (NopFeedback) Haptic(HapticStyle) {}
func (NopFeedback) Sound()             {}
