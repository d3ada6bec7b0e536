// Package geometry derives measurements from trim profile segments.
// Everything here is pure: coordinates are in real-world inches, and pixel
// space exists only at the rendering boundary via the scale factor.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

const (
	// GridStep is the snap resolution, 1/8".
	GridStep = 0.125
	// MajorGridStep is the heavy grid line spacing. Render-only; snapping
	// always uses GridStep.
	MajorGridStep = 4 * GridStep
	// HemLength is the flat developed-length allowance for a hem flange.
	HemLength = 0.5
)

// Segment is one drawn leg of a trim profile. Start and End are in inches,
// already snapped to the grid. Label is a single sequential letter assigned
// at creation and never reused.
type Segment struct {
	ID         int        `json:"id"`
	Start      geom.Coord `json:"start"`
	End        geom.Coord `json:"end"`
	Label      string     `json:"label"`
	HasHem     bool       `json:"has_hem"`
	HemAtStart bool       `json:"hem_at_start"`
}

// Snap rounds v to the nearest multiple of grid.
func Snap(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}

// SnapPoint snaps both axes independently.
func SnapPoint(p geom.Coord, grid float64) geom.Coord {
	return geom.Coord{X: Snap(p.X, grid), Y: Snap(p.Y, grid)}
}

// FromPixels converts device pixel coordinates to inches.
func FromPixels(px, py, scale float64) geom.Coord {
	return geom.Coord{X: px / scale, Y: py / scale}
}

// Length returns the segment's length in inches, hem excluded.
func (s Segment) Length() float64 {
	return math.Hypot(s.End.X-s.Start.X, s.End.Y-s.Start.Y)
}

func heading(s Segment) float64 {
	return math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X) * 180 / math.Pi
}

// AngleBetween returns the angle in degrees between the directions of two
// consecutive segments, normalized into [0, 360). The first segment of a
// profile has no predecessor and therefore no angle; callers skip it.
func AngleBetween(prev, next Segment) float64 {
	d := heading(next) - heading(prev)
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}

// HemTip returns the free end of the hem flange for rendering: HemLength
// inches from the hem endpoint, folded back over the segment toward the
// opposite endpoint rather than continuing past it.
func (s Segment) HemTip() geom.Coord {
	at, other := s.End, s.Start
	if s.HemAtStart {
		at, other = s.Start, s.End
	}
	return other.Minus(at).Unit().Times(HemLength).Plus(at)
}

// TotalLength returns the developed length of the profile: the sum of
// segment lengths plus a flat HemLength per hem. The flat allowance is a
// shop pricing rule, independent of the hem's rendered direction.
func TotalLength(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Length()
		if s.HasHem {
			total += HemLength
		}
	}
	return total
}

// BendCount counts brake folds: one per joint between consecutive segments,
// plus one per hem.
func BendCount(segments []Segment) int {
	bends := 0
	if n := len(segments); n > 1 {
		bends = n - 1
	}
	for _, s := range segments {
		if s.HasHem {
			bends++
		}
	}
	return bends
}
