package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pet/internal/core"
	"github.com/vovakirdan/tui-pet/internal/pet"
)

// Mood is the display tier derived from happiness. It only selects what to
// draw and never feeds back into the pet rules.
type Mood int

const (
	MoodSad Mood = iota
	MoodNeutral
	MoodHappy
)

// Mood thresholds
const (
	happyAt   = 50 // Happiness at or above this is happy
	neutralAt = 31 // Happiness at or above this (and below happyAt) is neutral
)

// MoodFor classifies a happiness value.
func MoodFor(happiness int) Mood {
	switch {
	case happiness >= happyAt:
		return MoodHappy
	case happiness >= neutralAt:
		return MoodNeutral
	default:
		return MoodSad
	}
}

// String returns the display name of the mood.
func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodNeutral:
		return "neutral"
	default:
		return "sad"
	}
}

// Color returns the color the pet is drawn in for this mood.
func (m Mood) Color() core.Color {
	switch m {
	case MoodHappy:
		return core.ColorBrightGreen
	case MoodNeutral:
		return core.ColorBrightYellow
	default:
		return core.ColorCyan
	}
}

// petArt is the pet sprite. E marks the eyes, M the mouth.
var petArt = []string{
	`   /\_____/\   `,
	`  /  E   E  \  `,
	` ( ==  M  == ) `,
	`  )         (  `,
	` (           ) `,
	`( ( )     ( ) )`,
	`(__(__)_(__)__)`,
}

// faces holds eye and mouth runes per mood.
var faces = map[Mood][2]string{
	MoodHappy:   {"^", "w"},
	MoodNeutral: {"o", "-"},
	MoodSad:     {"T", "n"},
}

// blinkEvery is how many frames pass between blinks.
const blinkEvery = 40

// PetSprite returns the sprite lines for a mood at the given frame.
func PetSprite(mood Mood, frame int) []string {
	face := faces[mood]
	eyes := face[0]
	if frame%blinkEvery == blinkEvery-1 {
		eyes = "-"
	}
	r := strings.NewReplacer("E", eyes, "M", face[1])

	lines := make([]string, len(petArt))
	for i, l := range petArt {
		lines[i] = r.Replace(l)
	}
	return lines
}

// Scene is everything the renderer needs for one frame.
type Scene struct {
	State    pet.State
	Rules    pet.Rules
	Feedback FeedbackState
	Frame    int
}

// Scene layout
const (
	meterWidth = 30 // Happiness bar cells
	maxHearts  = 10 // Treat icons drawn next to the count
)

// RenderScene draws the pet screen into dst.
func RenderScene(dst *core.Screen, sc Scene) {
	dst.Clear()

	mood := MoodFor(sc.State.Happiness)
	sprite := PetSprite(mood, sc.Frame)

	spriteW := 0
	for _, l := range sprite {
		spriteW = core.Max(spriteW, utf8.RuneCountInString(l))
	}
	// Title, blank, sprite, blank, happiness, meter, blank, treats
	contentH := len(sprite) + 7
	bounds := dst.Bounds()
	frame := bounds.Centered(meterWidth+8, contentH+2)
	// Only frame the scene when the whole box fits
	if bounds.Contains(frame.X, frame.Y) && bounds.Contains(frame.Right()-1, frame.Bottom()-1) {
		dst.DrawBox(frame, core.ColorGray)
	}
	y := core.Max(frame.Y+1, 0)

	dst.DrawTextCentered(y, "~ tui-pet ~", core.ColorBrightMagenta)
	y += 2

	// Haptic cues shake the sprite sideways
	x := (dst.Width() - spriteW) / 2
	spriteColor := mood.Color()
	if sc.Feedback.Style != pet.HapticNone {
		x += shakeOffset(sc.Feedback.Style, sc.Frame)
		spriteColor = core.ColorPink
	}
	for i, l := range sprite {
		dst.DrawTextColored(x, y+i, l, spriteColor)
	}
	if sc.Feedback.Note {
		dst.DrawTextColored(x+spriteW+1, y+1-sc.Frame%2, "♪", core.ColorBrightCyan)
	}
	y += len(sprite) + 1

	dst.DrawTextCentered(y, fmt.Sprintf("Your Pet's Happiness: %d", sc.State.Happiness), core.ColorDefault)
	y++
	drawMeter(dst, (dst.Width()-meterWidth-2)/2, y, sc.State.Happiness, sc.Rules.MaxHappiness, spriteColor)
	y += 2

	// Treats never go negative, so only the upper bound needs trimming
	hearts := strings.Repeat("♥", core.Min(sc.State.Treats, maxHearts))
	dst.DrawTextCentered(y, fmt.Sprintf("Treats left: %d  %s", sc.State.Treats, hearts), core.ColorPink)
}

// shakeOffset returns the horizontal sprite offset for a shaking frame.
func shakeOffset(style pet.HapticStyle, frame int) int {
	amp := 1
	if style == pet.HapticMedium {
		amp = 2
	}
	if frame%2 == 0 {
		return amp
	}
	return -amp
}

// drawMeter draws a bracketed bar. Values above full show a trailing '+'.
func drawMeter(dst *core.Screen, x, y, value, full int, c core.Color) {
	filled := 0
	if full > 0 {
		filled = core.Clamp(value*meterWidth/full, 0, meterWidth)
	}

	dst.Set(x, y, '[')
	dst.DrawHLine(x+1, y, filled, '█', c)
	dst.DrawHLine(x+1+filled, y, meterWidth-filled, '░', core.ColorGray)
	dst.Set(x+1+meterWidth, y, ']')
	if value > full {
		dst.SetColored(x+2+meterWidth, y, '+', core.ColorPink)
	}
}
