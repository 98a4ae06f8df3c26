package overlay

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatsOverlay renders frame rate and loading progress in the top left corner
type StatsOverlay struct {
	fps     int32
	loaded  int
	failed  int
	total   int
	hovered int
	scroll  float32

	Visible bool
}

// NewStatsOverlay creates a stats overlay
func NewStatsOverlay(visible bool) *StatsOverlay {
	return &StatsOverlay{Visible: visible, hovered: -1}
}

// UpdateStats updates the stats to display
func (so *StatsOverlay) UpdateStats(fps int32, loaded, failed, total, hovered int, scroll float32) {
	so.fps = fps
	so.loaded = loaded
	so.failed = failed
	so.total = total
	so.hovered = hovered
	so.scroll = scroll
}

// Lines returns the text the overlay shows
func (so *StatsOverlay) Lines() []string {
	hover := "-"
	if so.hovered >= 0 {
		hover = fmt.Sprintf("%d", so.hovered+1)
	}
	return []string{
		fmt.Sprintf("FPS: %d", so.fps),
		fmt.Sprintf("Models: %d/%d loaded", so.loaded, so.total),
		fmt.Sprintf("Failed: %d", so.failed),
		fmt.Sprintf("Hover: %s  Scroll: %.0f", hover, so.scroll),
	}
}

// Render draws the overlay
func (so *StatsOverlay) Render() {
	if !so.Visible {
		return
	}

	const (
		x, y       = 10, 10
		fontSize   = 16
		lineHeight = 20
		padding    = 6
	)
	lines := so.Lines()

	width := int32(0)
	for _, line := range lines {
		if w := rl.MeasureText(line, fontSize); w > width {
			width = w
		}
	}
	height := int32(len(lines)*lineHeight) - (lineHeight - fontSize)

	rl.DrawRectangle(x-padding, y-padding, width+2*padding, height+2*padding, rl.Fade(rl.Black, 0.6))
	for i, line := range lines {
		rl.DrawText(line, x, y+int32(i*lineHeight), fontSize, rl.RayWhite)
	}
}
