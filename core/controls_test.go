package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestInspectOnlyIgnoresInput(t *testing.T) {
	controls := InspectOnly()
	cam := DefaultCamera()

	inputs := []ControlInput{
		{},
		{Drag: mgl32.Vec2{120, -40}},
		{Pan: mgl32.Vec2{-30, 15}},
		{Wheel: 3},
		{Wheel: -5},
		{Drag: mgl32.Vec2{1, 1}, Pan: mgl32.Vec2{1, 1}, Wheel: 1},
	}
	for _, in := range inputs {
		got := controls.Apply(cam, in)
		if got != cam {
			t.Errorf("input %+v moved the camera: %+v", in, got)
		}
	}
}

func TestOrbitControlsZoom(t *testing.T) {
	controls := InspectOnly()
	controls.Zoom = true
	cam := DefaultCamera()
	before := cam.Position.Sub(cam.Target).Len()

	got := controls.Apply(cam, ControlInput{Wheel: 2, Drag: mgl32.Vec2{50, 50}})
	after := got.Position.Sub(got.Target).Len()
	if after >= before {
		t.Errorf("zoom in did not shorten distance: %f -> %f", before, after)
	}
	if got.Target != cam.Target {
		t.Errorf("zoom moved the target: %v", got.Target)
	}

	// Drag is ignored when rotation is off, so direction stays the same
	dirBefore := cam.Position.Sub(cam.Target).Normalize()
	dirAfter := got.Position.Sub(got.Target).Normalize()
	if !vec3Near(dirBefore, dirAfter, epsilon) {
		t.Errorf("zoom changed view direction: %v -> %v", dirBefore, dirAfter)
	}
}

func TestOrbitControlsRotateKeepsDistance(t *testing.T) {
	controls := InspectOnly()
	controls.Rotate = true
	cam := DefaultCamera()

	got := controls.Apply(cam, ControlInput{Drag: mgl32.Vec2{200, 30}})
	if vec3Near(got.Position, cam.Position, epsilon) {
		t.Fatal("rotate did not move the camera")
	}
	before := cam.Position.Sub(cam.Target).Len()
	after := got.Position.Sub(got.Target).Len()
	if abs32(before-after) > 1e-4 {
		t.Errorf("rotate changed distance: %f -> %f", before, after)
	}
}

func TestOrbitControlsPanMovesTarget(t *testing.T) {
	controls := InspectOnly()
	controls.Pan = true
	cam := DefaultCamera()

	got := controls.Apply(cam, ControlInput{Pan: mgl32.Vec2{100, 0}})
	if got.Target == cam.Target {
		t.Fatal("pan did not move the target")
	}
	offBefore := cam.Position.Sub(cam.Target)
	offAfter := got.Position.Sub(got.Target)
	if !vec3Near(offBefore, offAfter, 1e-4) {
		t.Errorf("pan changed camera offset: %v -> %v", offBefore, offAfter)
	}
}
