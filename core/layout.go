package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Grid breakpoints in window pixels
const (
	SmallBreakpoint  = 640
	MediumBreakpoint = 768
)

// Rect is an axis-aligned region in window pixels, origin at the top left
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether p lies inside the rectangle
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.X && p.X() < r.X+r.W && p.Y() >= r.Y && p.Y() < r.Y+r.H
}

// Offset returns the rectangle moved by dx, dy
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Visible reports whether any part of the rectangle is within a view of the
// given height starting at y=0
func (r Rect) Visible(viewHeight float32) bool {
	return r.Y+r.H > 0 && r.Y < viewHeight
}

// Columns returns how many grid columns fit a window of the given width
func Columns(width int) int {
	switch {
	case width < SmallBreakpoint:
		return 1
	case width < MediumBreakpoint:
		return 2
	default:
		return 3
	}
}

// GridSpec describes the gallery grid
type GridSpec struct {
	CellHeight float32
	Gap        float32
	Padding    float32
}

// GridLayout places n cells in order, left to right then top to bottom,
// filling the window width. It returns the cells and the total content height.
func GridLayout(n, width int, spec GridSpec) ([]Rect, float32) {
	if n <= 0 {
		return nil, 2 * spec.Padding
	}

	cols := Columns(width)
	inner := float32(width) - 2*spec.Padding - float32(cols-1)*spec.Gap
	cellW := inner / float32(cols)
	if cellW < 1 {
		cellW = 1
	}

	cells := make([]Rect, n)
	for i := range cells {
		row := i / cols
		col := i % cols
		cells[i] = Rect{
			X: spec.Padding + float32(col)*(cellW+spec.Gap),
			Y: spec.Padding + float32(row)*(spec.CellHeight+spec.Gap),
			W: cellW,
			H: spec.CellHeight,
		}
	}

	rows := (n + cols - 1) / cols
	height := 2*spec.Padding + float32(rows)*spec.CellHeight + float32(rows-1)*spec.Gap
	return cells, height
}
