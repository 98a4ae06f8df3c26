package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NormalizePointer converts a window position into viewport-relative
// coordinates in [-1, 1] on each axis, with +y pointing up. The second return
// value reports whether the position is inside the viewport. Positions
// outside are clamped to the nearest edge.
func NormalizePointer(mouse mgl32.Vec2, viewport Rect) (mgl32.Vec2, bool) {
	if viewport.W <= 0 || viewport.H <= 0 {
		return mgl32.Vec2{}, false
	}

	x := (mouse.X()-viewport.X)/viewport.W*2 - 1
	y := -((mouse.Y()-viewport.Y)/viewport.H*2 - 1)

	return mgl32.Vec2{
		mgl32.Clamp(x, -1, 1),
		mgl32.Clamp(y, -1, 1),
	}, viewport.Contains(mouse)
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float32) float32 {
	return mgl32.DegToRad(degrees)
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float32) float32 {
	return mgl32.RadToDeg(radians)
}
