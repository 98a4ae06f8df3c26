package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxYaw is the yaw reached with the pointer at either horizontal edge
	MaxYaw = float32(math.Pi)

	// PitchFactor attenuates pitch relative to yaw
	PitchFactor float32 = 0.05

	// MaxPitch is the pitch reached with the pointer at either vertical edge
	MaxPitch = MaxYaw * PitchFactor
)

// Rotation is a model orientation in radians.
// Yaw turns around the vertical axis, pitch around the horizontal one.
type Rotation struct {
	Yaw   float32
	Pitch float32
}

// TargetRotation maps a normalized pointer position to the orientation a
// model should turn toward. Moving the pointer up tilts the model back, so
// pitch has the opposite sign of the pointer's y.
func TargetRotation(pointer mgl32.Vec2) Rotation {
	x := mgl32.Clamp(pointer.X(), -1, 1)
	y := mgl32.Clamp(pointer.Y(), -1, 1)
	return Rotation{
		Yaw:   x * MaxYaw,
		Pitch: -y * MaxPitch,
	}
}

// RotationState is the per-model rotation carried between frames
type RotationState struct {
	Current Rotation
	Target  Rotation

	yaw   Damper
	pitch Damper
}

// Update retargets the state from the pointer and damps the current rotation
// toward it over dt seconds
func (s *RotationState) Update(pointer mgl32.Vec2, smoothTime, dt float32) {
	s.Target = TargetRotation(pointer)
	s.Current.Yaw = s.yaw.Step(s.Current.Yaw, s.Target.Yaw, smoothTime, dt)
	s.Current.Pitch = s.pitch.Step(s.Current.Pitch, s.Target.Pitch, smoothTime, dt)
}

// Settled reports whether the current rotation has reached the target
func (s *RotationState) Settled() bool {
	return s.Current == s.Target
}
