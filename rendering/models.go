package rendering

import (
	"errors"

	"cakegallery/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

var errNoMeshes = errors.New("asset has no meshes")

// NewModelLoader returns a loader that checks asset files on worker
// goroutines and loads the valid ones onto the GPU when polled from the
// render thread
func NewModelLoader(workers, perFrame int) *assets.Loader[rl.Model] {
	return assets.NewLoader(assets.CheckModelFile, decodeModel, workers, perFrame)
}

// decodeModel hands a checked file to raylib, which can only load models
// from a path
func decodeModel(path string, _ []byte) (rl.Model, error) {
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return rl.Model{}, errNoMeshes
	}
	return model, nil
}

// toMatrix converts a column-major mathgl matrix to raylib's layout
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
