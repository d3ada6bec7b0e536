// Package drawing holds the trim drawing surface state: an ordered polyline
// of segments built from snapped click points, with at most one selected
// segment and an optional in-progress point. All mutation happens through
// methods on State; measurement is delegated to the geometry package.
package drawing

import (
	"errors"
	"sync"

	"github.com/jbeda/geom"

	"trim-quote/geometry"
)

// Notice errors. None of these are fatal: handlers relay them to the toast
// surface and the state is left unchanged.
var (
	ErrNoSelection    = errors.New("no segment selected")
	ErrNoHem          = errors.New("selected segment has no hem")
	ErrUnknownSegment = errors.New("segment not found")
	ErrNeedsConfirm   = errors.New("drawing is not empty, confirm to clear")
)

// labelFor returns the sequential segment label for the n-th created
// segment: A..Z, then AA, AB and so on. Labels follow creation order and
// are never reassigned.
func labelFor(n int) string {
	label := ""
	for n >= 0 {
		label = string(rune('A'+n%26)) + label
		n = n/26 - 1
	}
	return label
}

// State is one user's drawing. Segments keep creation order, which is also
// label order; labels are never reassigned after a delete.
//
// Methods are safe for concurrent use. The same account can have the
// drawing open in two tabs, and even a single page fires overlapping
// fetches, so every mutation and read takes the state lock.
type State struct {
	mu         sync.Mutex
	segments   []geometry.Segment
	selectedID int // 0 when nothing is selected
	current    *geom.Coord
	nextLabel  int
	nextID     int
}

func NewState() *State {
	return &State{nextID: 1}
}

// PlacePoint confirms one click on the drawing surface. Raw coordinates are
// device pixels; they are converted to inches and snapped to the grid
// before touching the model. The first confirmed point only establishes the
// pending endpoint; every later one closes a segment and chains the next
// leg from it. Placing a point always drops the current selection.
//
// Returns a copy of the created segment, or nil when the click only set the
// pending point. Clicking the same grid point twice is ignored rather than
// creating a zero-length segment.
func (st *State) PlacePoint(rawX, rawY, scale float64) *geometry.Segment {
	st.mu.Lock()
	defer st.mu.Unlock()

	p := geometry.SnapPoint(geometry.FromPixels(rawX, rawY, scale), geometry.GridStep)
	st.selectedID = 0
	if st.current == nil {
		st.current = &p
		return nil
	}
	if p == *st.current {
		return nil
	}
	seg := geometry.Segment{
		ID:    st.nextID,
		Start: *st.current,
		End:   p,
		Label: labelFor(st.nextLabel),
	}
	st.nextID++
	st.nextLabel++
	st.segments = append(st.segments, seg)
	st.current = &p
	return &seg
}

// Select marks the segment as selected. The pending point and the chain are
// untouched, so drawing can continue after inspecting a segment.
func (st *State) Select(id int) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i := range st.segments {
		if st.segments[i].ID == id {
			st.selectedID = id
			return nil
		}
	}
	return ErrUnknownSegment
}

// Deselect drops the selection without touching anything else.
func (st *State) Deselect() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.selectedID = 0
}

// DeleteSelected removes the selected segment. Remaining segments keep
// their labels.
func (st *State) DeleteSelected() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.selectedID == 0 {
		return ErrNoSelection
	}
	for i := range st.segments {
		if st.segments[i].ID == st.selectedID {
			st.segments = append(st.segments[:i], st.segments[i+1:]...)
			break
		}
	}
	st.selectedID = 0
	return nil
}

// AddHem attaches a hem flange to the selected segment at the chosen end.
// Re-adding over an existing hem just moves it.
func (st *State) AddHem(atStart bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.selected()
	if s == nil {
		return ErrNoSelection
	}
	s.HasHem = true
	s.HemAtStart = atStart
	return nil
}

// RemoveHem clears the hem from the selected segment.
func (st *State) RemoveHem() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.selected()
	if s == nil {
		return ErrNoSelection
	}
	if !s.HasHem {
		return ErrNoHem
	}
	s.HasHem = false
	s.HemAtStart = false
	return nil
}

// Clear empties the drawing and restarts labels at A. When segments exist
// the caller must pass confirmed=true; the error lets the UI ask first.
func (st *State) Clear(confirmed bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.segments) > 0 && !confirmed {
		return ErrNeedsConfirm
	}
	st.segments = nil
	st.selectedID = 0
	st.current = nil
	st.nextLabel = 0
	st.nextID = 1
	return nil
}

// selected returns the selected segment, or nil. Callers hold st.mu.
func (st *State) selected() *geometry.Segment {
	for i := range st.segments {
		if st.segments[i].ID == st.selectedID {
			return &st.segments[i]
		}
	}
	return nil
}

// Segments returns a copy of the segment list in creation order.
func (st *State) Segments() []geometry.Segment {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]geometry.Segment, len(st.segments))
	copy(out, st.segments)
	return out
}

// SelectedID returns the selected segment's id, or 0.
func (st *State) SelectedID() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.selectedID
}

// Pending returns the in-progress endpoint, if a segment is being drawn.
func (st *State) Pending() (geom.Coord, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.current == nil {
		return geom.Coord{}, false
	}
	return *st.current, true
}

// TotalLength is the developed length of the whole drawing, hems included.
func (st *State) TotalLength() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return geometry.TotalLength(st.segments)
}

// BendCount is the number of brake folds the drawing implies.
func (st *State) BendCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return geometry.BendCount(st.segments)
}
