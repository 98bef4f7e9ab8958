package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pet/internal/core"
	"github.com/vovakirdan/tui-pet/internal/pet"
)

func TestMoodFor(t *testing.T) {
	tests := []struct {
		happiness int
		expected  Mood
	}{
		{150, MoodHappy},
		{100, MoodHappy},
		{50, MoodHappy},
		{49, MoodNeutral},
		{31, MoodNeutral},
		{30, MoodSad},
		{0, MoodSad},
		{170, MoodHappy},
	}

	for _, tt := range tests {
		if got := MoodFor(tt.happiness); got != tt.expected {
			t.Errorf("MoodFor(%d) = %v, expected %v", tt.happiness, got, tt.expected)
		}
	}
}

func TestPetSpriteFaces(t *testing.T) {
	happy := strings.Join(PetSprite(MoodHappy, 0), "\n")
	if !strings.Contains(happy, "^") || !strings.Contains(happy, "w") {
		t.Errorf("happy sprite should have ^ eyes and w mouth:\n%s", happy)
	}

	sad := strings.Join(PetSprite(MoodSad, 0), "\n")
	if !strings.Contains(sad, "T") {
		t.Errorf("sad sprite should have T eyes:\n%s", sad)
	}

	blink := PetSprite(MoodHappy, blinkEvery-1)[1]
	if strings.Contains(blink, "^") {
		t.Errorf("blink frame should close the eyes, got %q", blink)
	}

	for _, l := range PetSprite(MoodNeutral, 0) {
		if strings.ContainsAny(l, "EM") {
			t.Errorf("placeholders left in sprite line %q", l)
		}
	}
}

func TestRenderSceneText(t *testing.T) {
	screen := core.NewScreen(80, 22)
	RenderScene(screen, Scene{
		State: pet.State{Happiness: 100, Treats: 3},
		Rules: pet.DefaultRules(),
	})

	out := screen.String()
	if !strings.Contains(out, "Your Pet's Happiness: 100") {
		t.Errorf("scene should show the happiness line:\n%s", out)
	}
	if !strings.Contains(out, "Treats left: 3") {
		t.Errorf("scene should show the treat count:\n%s", out)
	}
	if strings.Contains(out, "♪") {
		t.Error("no note should be drawn without a sound cue")
	}
}

func TestRenderSceneOverflowAndNote(t *testing.T) {
	screen := core.NewScreen(80, 22)
	RenderScene(screen, Scene{
		State:    pet.State{Happiness: 170, Treats: 0},
		Rules:    pet.DefaultRules(),
		Feedback: FeedbackState{Style: pet.HapticMedium, Note: true},
	})

	out := screen.String()
	if !strings.Contains(out, "Your Pet's Happiness: 170") {
		t.Errorf("scene should show happiness above the cap as is:\n%s", out)
	}
	if !strings.Contains(out, "]+") {
		t.Errorf("meter should mark overflow:\n%s", out)
	}
	if !strings.Contains(out, "♪") {
		t.Errorf("sound cue should draw a note:\n%s", out)
	}
}

func TestRenderSceneTinyScreen(t *testing.T) {
	// Must not panic when the terminal is smaller than the scene
	screen := core.NewScreen(10, 3)
	RenderScene(screen, Scene{
		State: pet.State{Happiness: 10},
		Rules: pet.DefaultRules(),
	})
}

func TestDrawMeter(t *testing.T) {
	screen := core.NewScreen(40, 1)
	drawMeter(screen, 0, 0, 75, 150, core.ColorGreen)

	row := screen.Row(0)
	filled := strings.Count(row, "█")
	if filled != meterWidth/2 {
		t.Errorf("half happiness should fill %d cells, got %d in %q", meterWidth/2, filled, row)
	}
	if !strings.HasPrefix(row, "[") {
		t.Errorf("meter should start with '[', got %q", row)
	}
}

func TestRenderSceneFrameOnlyWhenItFits(t *testing.T) {
	roomy := core.NewScreen(80, 22)
	RenderScene(roomy, Scene{State: pet.State{Happiness: 100}, Rules: pet.DefaultRules()})
	if !strings.Contains(roomy.String(), "╭") || !strings.Contains(roomy.String(), "╯") {
		t.Errorf("scene should be framed on a large screen:\n%s", roomy.String())
	}

	// Wide enough for the text but not for the box
	narrow := core.NewScreen(34, 22)
	RenderScene(narrow, Scene{State: pet.State{Happiness: 100}, Rules: pet.DefaultRules()})
	if strings.ContainsAny(narrow.String(), "╭╮╰╯") {
		t.Errorf("box should be skipped when it does not fit:\n%s", narrow.String())
	}
}

func TestRenderSceneHeartsCapped(t *testing.T) {
	screen := core.NewScreen(80, 22)
	RenderScene(screen, Scene{State: pet.State{Happiness: 100, Treats: 15}, Rules: pet.DefaultRules()})

	out := screen.String()
	if !strings.Contains(out, "Treats left: 15") {
		t.Errorf("scene should show the full count:\n%s", out)
	}
	if n := strings.Count(out, "♥"); n != maxHearts {
		t.Errorf("expected %d hearts, got %d", maxHearts, n)
	}
}
