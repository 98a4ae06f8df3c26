package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking at a target point
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // degrees
}

// DefaultCamera matches the framing every cake viewport uses
func DefaultCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{0, 3, 7},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     45,
	}
}

// ControlInput is the raw interaction for one frame inside a viewport
type ControlInput struct {
	Drag  mgl32.Vec2 // pixels dragged with the rotate button
	Pan   mgl32.Vec2 // pixels dragged with the pan button
	Wheel float32    // wheel notches, positive zooms in
}

// OrbitControls gates which kinds of interaction may move the camera
type OrbitControls struct {
	Zoom   bool
	Pan    bool
	Rotate bool

	RotateSpeed float32 // radians per pixel
	PanSpeed    float32 // world units per pixel at unit distance
	ZoomStep    float32 // fraction of distance per wheel notch
	MinDistance float32
	MaxDistance float32
}

// InspectOnly returns controls that ignore every kind of input
func InspectOnly() OrbitControls {
	return OrbitControls{
		RotateSpeed: 0.005,
		PanSpeed:    0.002,
		ZoomStep:    0.1,
		MinDistance: 1,
		MaxDistance: 50,
	}
}

// Enabled reports whether any input can move the camera
func (c OrbitControls) Enabled() bool {
	return c.Zoom || c.Pan || c.Rotate
}

// Apply returns the camera after this frame's input
func (c OrbitControls) Apply(cam Camera, in ControlInput) Camera {
	if !c.Enabled() {
		return cam
	}

	offset := cam.Position.Sub(cam.Target)
	dist := offset.Len()
	if dist == 0 {
		return cam
	}

	if c.Rotate && (in.Drag.X() != 0 || in.Drag.Y() != 0) {
		// Spherical coordinates around the target, y up
		theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
		phi := math.Acos(float64(mgl32.Clamp(offset.Y()/dist, -1, 1)))

		theta -= float64(in.Drag.X() * c.RotateSpeed)
		phi -= float64(in.Drag.Y() * c.RotateSpeed)
		phi = math.Max(1e-3, math.Min(math.Pi-1e-3, phi))

		sinPhi := math.Sin(phi)
		offset = mgl32.Vec3{
			float32(float64(dist) * sinPhi * math.Sin(theta)),
			float32(float64(dist) * math.Cos(phi)),
			float32(float64(dist) * sinPhi * math.Cos(theta)),
		}
	}

	if c.Zoom && in.Wheel != 0 {
		scale := float32(math.Pow(float64(1-c.ZoomStep), float64(in.Wheel)))
		newDist := mgl32.Clamp(dist*scale, c.MinDistance, c.MaxDistance)
		offset = offset.Normalize().Mul(newDist)
		dist = newDist
	}

	if c.Pan && (in.Pan.X() != 0 || in.Pan.Y() != 0) {
		forward := offset.Mul(-1).Normalize()
		right := forward.Cross(cam.Up).Normalize()
		up := right.Cross(forward)
		delta := right.Mul(-in.Pan.X() * c.PanSpeed * dist).Add(up.Mul(in.Pan.Y() * c.PanSpeed * dist))
		cam.Target = cam.Target.Add(delta)
	}

	cam.Position = cam.Target.Add(offset)
	return cam
}
