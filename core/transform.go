package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ModelMatrix composes translation, rotation and uniform scale into a
// column-major model matrix. Rotation is applied as pitch after yaw
// (intrinsic X then Y), so yaw spins the model around its own up axis and
// pitch tilts the spinning model toward the camera.
func ModelMatrix(scale float32, position mgl32.Vec3, rot Rotation) mgl32.Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rx := mgl32.HomogRotate3DX(rot.Pitch)
	ry := mgl32.HomogRotate3DY(rot.Yaw)
	s := mgl32.Scale3D(scale, scale, scale)
	return t.Mul4(rx).Mul4(ry).Mul4(s)
}
