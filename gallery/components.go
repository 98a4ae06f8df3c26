package gallery

import (
	"cakegallery/assets"
	"cakegallery/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ModelData is the fixed configuration of one viewport's model
type ModelData struct {
	Index    int
	Path     string
	Scale    float32
	Position mgl32.Vec3
}

type PointerData struct {
	Pos     mgl32.Vec2 // normalized, +y up
	Hovered bool
}

type AssetData struct {
	Status assets.Status
}

// RevealData fades a model in once its asset arrives
type RevealData struct {
	Tween   *gween.Tween
	Opacity float32
}

var (
	Model    = donburi.NewComponentType[ModelData]()
	Pointer  = donburi.NewComponentType[PointerData]()
	Rotation = donburi.NewComponentType[core.RotationState]()
	Asset    = donburi.NewComponentType[AssetData]()
	Reveal   = donburi.NewComponentType[RevealData]()
)
