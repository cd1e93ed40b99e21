package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"thematicmap/internal/drill"
)

const (
	fadeFrames   = 6
	fadeInterval = 50 * time.Millisecond
)

type frameMsg struct{ gen int }

// Animator fades in the handles of the last drill delta over a few ticks.
// Fade-out handles are already hidden by the tracker, so they are dropped
// at once. Starting a new fade cancels the running one.
type Animator struct {
	gen    int
	frame  int
	fading map[drill.Handle]bool
}

// Start begins fading d and returns the first tick, or nil when there is
// nothing to fade in.
func (a *Animator) Start(d drill.Delta) tea.Cmd {
	a.gen++
	a.frame = 0
	a.fading = make(map[drill.Handle]bool, len(d.FadeIn))
	for _, h := range d.FadeIn {
		a.fading[h] = true
	}
	if len(a.fading) == 0 {
		a.fading = nil
		return nil
	}
	return a.tick()
}

// Cancel ends any running fade; everything is drawn fully.
func (a *Animator) Cancel() {
	a.gen++
	a.fading = nil
}

func (a *Animator) tick() tea.Cmd {
	gen := a.gen
	return tea.Tick(fadeInterval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

// Step advances the fade. Ticks from a cancelled fade are ignored.
func (a *Animator) Step(msg frameMsg) tea.Cmd {
	if msg.gen != a.gen || a.fading == nil {
		return nil
	}
	a.frame++
	if a.frame >= fadeFrames {
		a.fading = nil
		return nil
	}
	return a.tick()
}

func (a Animator) Running() bool { return a.fading != nil }

// Progress is how far a handle has faded in, from 0 to 1.
func (a Animator) Progress(h drill.Handle) float64 {
	if !a.fading[h] {
		return 1
	}
	return float64(a.frame+1) / float64(fadeFrames+1)
}
