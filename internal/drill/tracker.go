package drill

type layerState struct {
	drilled   map[string]bool
	disclosed map[string]bool
	order     []string // drilled ids, oldest first
	selected  []string // selection order, most recent last
	parents   map[string]string
}

func newLayerState() *layerState {
	return &layerState{
		drilled:   make(map[string]bool),
		disclosed: make(map[string]bool),
		parents:   make(map[string]string),
	}
}

func (ls *layerState) selectedIndex(id string) int {
	for i, s := range ls.selected {
		if s == id {
			return i
		}
	}
	return -1
}

func (ls *layerState) deselect(id string) {
	if i := ls.selectedIndex(id); i >= 0 {
		ls.selected = append(ls.selected[:i], ls.selected[i+1:]...)
	}
}

func (ls *layerState) undrill(id string) {
	delete(ls.drilled, id)
	for i, d := range ls.order {
		if d == id {
			ls.order = append(ls.order[:i], ls.order[i+1:]...)
			return
		}
	}
}

// Tracker holds the drill, disclosure and selection state of one basemap's
// area layers. It is not safe for concurrent use; one map owns one tracker.
type Tracker struct {
	h       Hierarchy
	mode    Mode
	layers  []*layerState
	clicked int
}

// New returns a tracker in the initial state: only layer 0 shown, nothing
// selected.
func New(h Hierarchy, mode Mode) *Tracker {
	t := &Tracker{h: h, mode: mode}
	t.layers = make([]*layerState, h.LayerCount())
	for i := range t.layers {
		t.layers[i] = newLayerState()
	}
	return t
}

func (t *Tracker) Mode() Mode     { return t.mode }
func (t *Tracker) SetMode(m Mode) { t.mode = m }

// SetClickInfo records the layer the next drill operation acts on.
func (t *Tracker) SetClickInfo(layer int) {
	if layer >= 0 && layer < len(t.layers) {
		t.clicked = layer
	}
}

func (t *Tracker) ClickedLayer() int { return t.clicked }

func (t *Tracker) state(layer int) (*layerState, bool) {
	if layer < 0 || layer >= len(t.layers) {
		return nil, false
	}
	return t.layers[layer], true
}

func (t *Tracker) IsDrilled(layer int, id string) bool {
	ls, ok := t.state(layer)
	return ok && ls.drilled[id]
}

func (t *Tracker) IsDisclosed(layer int, id string) bool {
	ls, ok := t.state(layer)
	return ok && ls.disclosed[id]
}

func (t *Tracker) IsSelected(layer int, id string) bool {
	ls, ok := t.state(layer)
	return ok && ls.selectedIndex(id) >= 0
}

// IsVisible reports whether an area is currently drawn: top-layer areas
// unless drilled, lower-layer areas when disclosed and not drilled.
func (t *Tracker) IsVisible(layer int, id string) bool {
	ls, ok := t.state(layer)
	if !ok || ls.drilled[id] {
		return false
	}
	if layer == 0 {
		return t.hasArea(0, id)
	}
	return ls.disclosed[id]
}

func (t *Tracker) hasArea(layer int, id string) bool {
	for _, a := range t.h.Areas(layer) {
		if a == id {
			return true
		}
	}
	return false
}

// Visible lists the drawn areas of a layer in registration order.
func (t *Tracker) Visible(layer int) []string {
	var out []string
	for _, id := range t.h.Areas(layer) {
		if t.IsVisible(layer, id) {
			out = append(out, id)
		}
	}
	return out
}

// Drilled lists the drilled areas of a layer, oldest first.
func (t *Tracker) Drilled(layer int) []string {
	ls, ok := t.state(layer)
	if !ok {
		return nil
	}
	return append([]string(nil), ls.order...)
}

// Disclosed lists the disclosed areas of a layer in registration order.
func (t *Tracker) Disclosed(layer int) []string {
	ls, ok := t.state(layer)
	if !ok {
		return nil
	}
	var out []string
	for _, id := range t.h.Areas(layer) {
		if ls.disclosed[id] {
			out = append(out, id)
		}
	}
	return out
}

// Parent returns the area that disclosed id, if it is disclosed.
func (t *Tracker) Parent(layer int, id string) (string, bool) {
	ls, ok := t.state(layer)
	if !ok {
		return "", false
	}
	p, ok := ls.parents[id]
	return p, ok
}

// Select adds a visible area to its layer's selection and makes that layer
// the clicked one. Re-selecting moves the area to the most recent position.
// Hidden and drilled areas cannot be selected.
func (t *Tracker) Select(layer int, id string) bool {
	if !t.IsVisible(layer, id) {
		return false
	}
	ls := t.layers[layer]
	ls.deselect(id)
	ls.selected = append(ls.selected, id)
	t.clicked = layer
	return true
}

func (t *Tracker) Deselect(layer int, id string) {
	if ls, ok := t.state(layer); ok {
		ls.deselect(id)
	}
}

func (t *Tracker) ClearSelection(layer int) {
	if ls, ok := t.state(layer); ok {
		ls.selected = nil
	}
}

func (t *Tracker) Selected(layer int) []string {
	ls, ok := t.state(layer)
	if !ok {
		return nil
	}
	return append([]string(nil), ls.selected...)
}

// DrillDown drills every selected area of the clicked layer that has
// children and is not drilled yet, in selection order. In single mode only
// the most recent such area is drilled and every other expanded branch is
// collapsed first. When anything was drilled the child layer becomes the
// clicked one, so a following DrillUp undoes it.
func (t *Tracker) DrillDown() Delta {
	var d Delta
	layer := t.clicked
	if t.mode == ModeNone || layer+1 >= len(t.layers) {
		return d
	}
	ls := t.layers[layer]
	var targets []string
	for _, id := range ls.selected {
		if !ls.drilled[id] && len(t.h.Children(layer, id)) > 0 {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return d
	}
	if t.mode == ModeSingle {
		targets = targets[len(targets)-1:]
		t.collapseOtherBranches(layer, targets[0], &d)
	}
	for _, id := range targets {
		t.drill(layer, id, &d)
	}
	t.clicked = layer + 1
	return d
}

func (t *Tracker) drill(layer int, id string, d *Delta) {
	ls := t.layers[layer]
	if ls.drilled[id] {
		return
	}
	ls.drilled[id] = true
	ls.order = append(ls.order, id)
	ls.deselect(id)
	d.out(layer, id)

	child := t.layers[layer+1]
	for _, c := range t.h.Children(layer, id) {
		child.parents[c] = id
		if child.disclosed[c] {
			continue
		}
		child.disclosed[c] = true
		d.in(layer+1, c)
	}
}

// collapseOtherBranches undrills everything at or above layer that is not
// the target or one of its ancestors.
func (t *Tracker) collapseOtherBranches(layer int, target string, d *Delta) {
	branch := make([]string, layer+1)
	branch[layer] = target
	for l := layer; l > 0; l-- {
		branch[l-1] = t.layers[l].parents[branch[l]]
	}
	for l := 0; l <= layer; l++ {
		ls := t.layers[l]
		for i := len(ls.order) - 1; i >= 0; i-- {
			if id := ls.order[i]; id != branch[l] {
				t.collapse(l, id, true, d)
			}
		}
	}
}

// collapse undrills id and undiscloses its children, recursing into any
// drilled descendants. reveal adds id itself to the fade-in list; it is
// false for descendants that are being hidden along with their parent.
func (t *Tracker) collapse(layer int, id string, reveal bool, d *Delta) {
	ls := t.layers[layer]
	if !ls.drilled[id] {
		return
	}
	if layer+1 < len(t.layers) {
		child := t.layers[layer+1]
		for _, c := range t.h.Children(layer, id) {
			if p, ok := child.parents[c]; !ok || p != id {
				continue
			}
			wasVisible := child.disclosed[c] && !child.drilled[c]
			t.collapse(layer+1, c, false, d)
			delete(child.disclosed, c)
			delete(child.parents, c)
			child.deselect(c)
			if wasVisible {
				d.out(layer+1, c)
			}
		}
	}
	ls.undrill(id)
	if reveal {
		d.in(layer, id)
	}
}

// DrillUp collapses the parents of the selected areas of the clicked layer,
// in selection order. With nothing selected there it collapses every
// drilled area of the parent layer, most recent first. The collapsed
// parents become selected and the parent layer becomes the clicked one.
func (t *Tracker) DrillUp() Delta {
	var d Delta
	layer := t.clicked
	if layer <= 0 || layer >= len(t.layers) {
		return d
	}
	ls := t.layers[layer]
	parentState := t.layers[layer-1]
	var parents []string
	seen := make(map[string]bool)
	if len(ls.selected) == 0 {
		for i := len(parentState.order) - 1; i >= 0; i-- {
			parents = append(parents, parentState.order[i])
		}
	} else {
		for _, id := range ls.selected {
			p, ok := ls.parents[id]
			if !ok || seen[p] {
				continue
			}
			seen[p] = true
			parents = append(parents, p)
		}
	}
	if len(parents) == 0 {
		return d
	}
	for _, p := range parents {
		t.collapse(layer-1, p, true, &d)
	}
	for _, p := range parents {
		parentState.deselect(p)
		parentState.selected = append(parentState.selected, p)
	}
	t.clicked = layer - 1
	return d
}

// Reset collapses every drilled area back to the initial top-layer view and
// clears all selections.
func (t *Tracker) Reset() Delta {
	var d Delta
	if len(t.layers) == 0 {
		return d
	}
	top := t.layers[0]
	for i := len(top.order) - 1; i >= 0; i-- {
		t.collapse(0, top.order[i], true, &d)
	}
	for i, ls := range t.layers {
		if i > 0 {
			// nothing should remain, but an orphaned disclosure must not survive a reset
			for id := range ls.disclosed {
				if !ls.drilled[id] {
					d.out(i, id)
				}
			}
			ls.disclosed = make(map[string]bool)
			ls.parents = make(map[string]string)
			ls.drilled = make(map[string]bool)
			ls.order = nil
		}
		ls.selected = nil
	}
	t.clicked = 0
	return d
}
