package types

import (
	"time"

	"github.com/jbeda/geom"

	"trim-quote/geometry"
)

// PlacePointRequest is one confirmed click from the drawing canvas, in raw
// device pixels. Scale is the canvas pixels-per-inch at click time.
type PlacePointRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// SelectRequest picks a segment by id.
type SelectRequest struct {
	ID int `json:"id"`
}

// HemRequest attaches a hem to the selected segment.
type HemRequest struct {
	AtStart bool `json:"at_start"`
}

// ClearRequest wipes the drawing; Confirmed must be true when segments exist.
type ClearRequest struct {
	Confirmed bool `json:"confirmed"`
}

// CalcRequest holds the calculator form sent by HTMX: manual length entries
// in inches plus a bend count.
type CalcRequest struct {
	Inches []float64 `form:"inches[]" json:"inches"`
	Bends  int       `form:"bends" json:"bends"`
}

// ConfigSubmission saves the calculator inputs under a name.
type ConfigSubmission struct {
	Name   string    `json:"name"`
	Inches []float64 `json:"inches"`
	Bends  int       `json:"bends"`
}

// SavedConfig is one row of the saved-configuration list.
type SavedConfig struct {
	ID        int
	Name      string
	Inches    []float64
	Bends     int
	CreatedBy string
	CreatedAt time.Time
}

// TotalInches sums the saved length entries.
func (c SavedConfig) TotalInches() float64 {
	var total float64
	for _, in := range c.Inches {
		total += in
	}
	return total
}

// SegmentView is a segment plus its derived display values: the length, the
// joint angle to the previous segment (nil for the first), and the rendered
// hem tip when a hem is attached.
type SegmentView struct {
	geometry.Segment
	Length float64     `json:"length"`
	Angle  *float64    `json:"angle,omitempty"`
	HemTip *geom.Coord `json:"hem_tip,omitempty"`
}
