// Package drill tracks which areas of a layered basemap are drilled into,
// disclosed or selected, and reports what has to fade in or out when that
// changes.
//
// Layer 0 is always shown. Drilling an area hides it and discloses its
// children in the next layer; drilling up reverses that. The tracker never
// animates anything itself: every operation returns a Delta for whoever
// runs the animation.
package drill

import (
	"fmt"
	"strings"
)

// Mode controls how many branches of the hierarchy may be expanded.
type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeMultiple
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMultiple:
		return "multiple"
	}
	return "none"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return ModeNone, nil
	case "single":
		return ModeSingle, nil
	case "multiple", "":
		return ModeMultiple, nil
	}
	return ModeNone, fmt.Errorf("unknown drill mode %q", s)
}

// Kind distinguishes the displayables of one area.
type Kind int

const (
	KindArea Kind = iota
	KindLabel
)

// Handle names one displayable object for the animation runner.
type Handle struct {
	Layer int
	Area  string
	Kind  Kind
}

// Delta is what changed: objects to remove now and objects to fade in.
type Delta struct {
	FadeOut []Handle
	FadeIn  []Handle
}

func (d Delta) Empty() bool { return len(d.FadeOut) == 0 && len(d.FadeIn) == 0 }

func (d *Delta) out(layer int, id string) {
	d.FadeOut = append(d.FadeOut, Handle{layer, id, KindArea}, Handle{layer, id, KindLabel})
}

func (d *Delta) in(layer int, id string) {
	d.FadeIn = append(d.FadeIn, Handle{layer, id, KindArea}, Handle{layer, id, KindLabel})
}

// Hierarchy is the static area metadata the tracker walks.
type Hierarchy interface {
	LayerCount() int
	LayerName(layer int) string
	Areas(layer int) []string
	Children(layer int, id string) []string
}

// Selectable is anything holding a layer-scoped selection.
type Selectable interface {
	Select(layer int, id string) bool
	Deselect(layer int, id string)
	Selected(layer int) []string
}

// Drillable is anything that can drill and undo drilling.
type Drillable interface {
	DrillDown() Delta
	DrillUp() Delta
	Reset() Delta
}

var (
	_ Selectable = (*Tracker)(nil)
	_ Drillable  = (*Tracker)(nil)
)
