package main

import (
	"encoding/json"
	"io"
	"math"

	"github.com/gogpu/plotgen"
)

// pathJSON is the wire form of a path. Primitives keep their shorthand
// and carry no points.
type pathJSON struct {
	Points   [][2]float64 `json:"points,omitempty"`
	Kind     string       `json:"kind,omitempty"`
	CX       float64      `json:"cx,omitempty"`
	CY       float64      `json:"cy,omitempty"`
	R        float64      `json:"r,omitempty"`
	Sides    int          `json:"sides,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	Group    string       `json:"group,omitempty"`
	Label    string       `json:"label,omitempty"`
}

type boundsJSON struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Margin   float64 `json:"margin"`
	Truncate bool    `json:"truncate,omitempty"`
}

// document is the JSON output of one generation.
type document struct {
	RunID     string     `json:"run_id"`
	Algorithm string     `json:"algorithm"`
	Seed      uint64     `json:"seed"`
	Bounds    boundsJSON `json:"bounds"`
	Paths     []pathJSON `json:"paths"`
	Helpers   []pathJSON `json:"helpers,omitempty"`
}

// round6 trims coordinates to six decimals.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func encodePath(p plotgen.Path) pathJSON {
	out := pathJSON{Group: p.Group, Label: p.Label}
	switch s := p.Shape.(type) {
	case plotgen.Circle:
		out.Kind, out.CX, out.CY, out.R = "circle", round6(s.Center.X), round6(s.Center.Y), round6(s.Radius)
		return out
	case plotgen.Polygon:
		out.Kind, out.CX, out.CY, out.R = "polygon", round6(s.Center.X), round6(s.Center.Y), round6(s.Radius)
		out.Sides, out.Rotation = s.Sides, round6(s.Rotation)
		return out
	}
	out.Points = make([][2]float64, len(p.Points))
	for i, pt := range p.Points {
		out.Points[i] = [2]float64{round6(pt.X), round6(pt.Y)}
	}
	return out
}

func encodePaths(paths []plotgen.Path) []pathJSON {
	out := make([]pathJSON, len(paths))
	for i, p := range paths {
		out[i] = encodePath(p)
	}
	return out
}

func newBoundsJSON(b plotgen.Bounds) boundsJSON {
	return boundsJSON{Width: b.Width, Height: b.Height, Margin: b.Margin, Truncate: b.Truncate}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
