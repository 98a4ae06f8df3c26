// Package gallery keeps the per-viewport state of the cake grid: which model
// each viewport shows, where the pointer is, how far each model has turned,
// and whether its asset has arrived. Viewports never read each other's state.
package gallery

import (
	"cakegallery/assets"
	"cakegallery/config"
	"cakegallery/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

type Options struct {
	SmoothTime    float32
	RevealSeconds float32
	TrackOutside  bool
}

// OptionsFrom picks the gallery options out of the settings
func OptionsFrom(s config.Settings) Options {
	return Options{
		SmoothTime:    s.Motion.SmoothTime,
		RevealSeconds: s.Motion.RevealSeconds,
		TrackOutside:  s.Motion.TrackOutside,
	}
}

type Gallery struct {
	world    donburi.World
	entities []donburi.Entity // input order
	opts     Options
}

// New creates one viewport entity per model, in order
func New(models []config.ModelSettings, opts Options) *Gallery {
	g := &Gallery{
		world:    donburi.NewWorld(),
		entities: make([]donburi.Entity, 0, len(models)),
		opts:     opts,
	}

	for i, m := range models {
		entity := g.world.Create(Model, Pointer, Rotation, Asset, Reveal)
		entry := g.world.Entry(entity)
		Model.SetValue(entry, ModelData{
			Index:    i,
			Path:     m.Path,
			Scale:    m.Scale,
			Position: mgl32.Vec3{m.Position[0], m.Position[1], m.Position[2]},
		})
		Asset.SetValue(entry, AssetData{Status: assets.Pending})
		g.entities = append(g.entities, entity)
	}
	return g
}

// Len returns the number of viewports
func (g *Gallery) Len() int {
	return len(g.entities)
}

func (g *Gallery) entry(i int) *donburi.Entry {
	return g.world.Entry(g.entities[i])
}

// Model returns the configuration of viewport i
func (g *Gallery) Model(i int) ModelData {
	return *Model.Get(g.entry(i))
}

// Status returns the asset status of viewport i
func (g *Gallery) Status(i int) assets.Status {
	return Asset.Get(g.entry(i)).Status
}

// MarkLoaded records that the asset for viewport i is ready and starts its
// fade in
func (g *Gallery) MarkLoaded(i int) {
	e := g.entry(i)
	Asset.Get(e).Status = assets.Ready

	r := Reveal.Get(e)
	if g.opts.RevealSeconds <= 0 {
		r.Opacity = 1
		r.Tween = nil
		return
	}
	r.Opacity = 0
	r.Tween = gween.New(0, 1, g.opts.RevealSeconds, ease.OutCubic)
}

// MarkFailed records that the asset for viewport i will never arrive. The
// viewport keeps rendering empty.
func (g *Gallery) MarkFailed(i int) {
	Asset.Get(g.entry(i)).Status = assets.Failed
}

// Update advances every viewport by dt seconds
func (g *Gallery) Update(dt float32, pointer PointerFunc) {
	g.updatePointers(pointer)
	g.updateRotation(dt)
	g.updateReveal(dt)
}

// View is what the renderer needs to draw viewport i this frame
type View struct {
	Loaded    bool
	Transform mgl32.Mat4
	Opacity   float32
}

// View returns the render state of viewport i
func (g *Gallery) View(i int) View {
	e := g.entry(i)
	if Asset.Get(e).Status != assets.Ready {
		return View{}
	}
	m := Model.Get(e)
	rot := Rotation.Get(e)
	return View{
		Loaded:    true,
		Transform: core.ModelMatrix(m.Scale, m.Position, rot.Current),
		Opacity:   Reveal.Get(e).Opacity,
	}
}

// ViewportState is a read-only report of one viewport
type ViewportState struct {
	Index       int     `json:"index"`
	Path        string  `json:"path"`
	Status      string  `json:"status"`
	Hovered     bool    `json:"hovered"`
	Yaw         float32 `json:"yaw"`
	Pitch       float32 `json:"pitch"`
	TargetYaw   float32 `json:"targetYaw"`
	TargetPitch float32 `json:"targetPitch"`
	Opacity     float32 `json:"opacity"`
}

// Snapshot reports every viewport in order
func (g *Gallery) Snapshot() []ViewportState {
	out := make([]ViewportState, len(g.entities))
	for i := range g.entities {
		e := g.entry(i)
		m := Model.Get(e)
		rot := Rotation.Get(e)
		out[i] = ViewportState{
			Index:       m.Index,
			Path:        m.Path,
			Status:      Asset.Get(e).Status.String(),
			Hovered:     Pointer.Get(e).Hovered,
			Yaw:         rot.Current.Yaw,
			Pitch:       rot.Current.Pitch,
			TargetYaw:   rot.Target.Yaw,
			TargetPitch: rot.Target.Pitch,
			Opacity:     Reveal.Get(e).Opacity,
		}
	}
	return out
}

// Loaded counts viewports whose asset is ready
func (g *Gallery) Loaded() int {
	n := 0
	for i := range g.entities {
		if g.Status(i) == assets.Ready {
			n++
		}
	}
	return n
}
