package rendering

import (
	"fmt"
	"image/color"
	"log"

	"cakegallery/assets"
	"cakegallery/config"
	"cakegallery/core"
	"cakegallery/gallery"
	"cakegallery/rendering/overlay"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// GalleryRenderer owns the window and draws one viewport per gallery entry
type GalleryRenderer struct {
	settings config.Settings
	gallery  *gallery.Gallery

	loader    *assets.Loader[rl.Model]
	lighting  *Lighting
	viewports []*Viewport
	stats     *overlay.StatsOverlay

	grid          core.GridSpec
	background    color.RGBA
	width, height int
	contentHeight float32
	scroll        float32
	hovered       int
}

// NewGalleryRenderer opens the window and starts loading every asset
func NewGalleryRenderer(s config.Settings, g *gallery.Gallery) (*GalleryRenderer, error) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if s.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(s.Window.Width), int32(s.Window.Height), s.Window.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("failed to open %dx%d window", s.Window.Width, s.Window.Height)
	}
	rl.SetTargetFPS(int32(s.Window.TargetFPS))

	bg := s.Window.Background
	r := &GalleryRenderer{
		settings:   s,
		gallery:    g,
		loader:     NewModelLoader(s.Assets.Workers, s.Assets.DecodePerTick),
		lighting:   NewLighting(s.Lights),
		stats:      overlay.NewStatsOverlay(s.Window.ShowStats),
		background: color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: bg[3]},
		grid: core.GridSpec{
			CellHeight: s.Grid.CellHeight,
			Gap:        s.Grid.Gap,
			Padding:    s.Grid.Padding,
		},
		hovered: -1,
	}

	camera := core.Camera{
		Position: vec3(s.Camera.Position),
		Target:   vec3(s.Camera.Target),
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     s.Camera.FovY,
	}
	controls := core.InspectOnly()
	controls.Zoom = s.Camera.EnableZoom
	controls.Pan = s.Camera.EnablePan
	controls.Rotate = s.Camera.EnableRotate

	r.viewports = make([]*Viewport, g.Len())
	for i := range r.viewports {
		path := s.AssetPath(config.ModelSettings{Path: g.Model(i).Path})
		r.viewports[i] = newViewport(camera, controls, r.loader.Request(path))
	}

	r.relayout(rl.GetScreenWidth(), rl.GetScreenHeight())
	log.Printf("Gallery window %dx%d, %d viewports, %d columns", r.width, r.height, len(r.viewports), core.Columns(r.width))
	return r, nil
}

// ShouldClose reports whether the user asked to close the window
func (r *GalleryRenderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Frame runs one iteration of the render loop
func (r *GalleryRenderer) Frame() {
	dt := rl.GetFrameTime()

	if rl.IsWindowResized() {
		r.relayout(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		r.stats.Visible = !r.stats.Visible
	}

	r.pollAssets()

	mp := rl.GetMousePosition()
	mouse := mgl32.Vec2{mp.X, mp.Y}
	wheel := rl.GetMouseWheelMove()

	screens := make([]core.Rect, len(r.viewports))
	for i, v := range r.viewports {
		screens[i] = v.rect.Offset(0, -r.scroll)
	}

	r.hovered = -1
	for i, rect := range screens {
		if rect.Contains(mouse) {
			r.hovered = i
			break
		}
	}

	if r.hovered >= 0 && r.viewports[r.hovered].controls.Zoom {
		r.viewports[r.hovered].handleInput(screens[r.hovered], mouse, wheel)
	} else {
		r.scrollBy(-wheel * r.settings.Grid.ScrollSpeed)
		if r.hovered >= 0 {
			r.viewports[r.hovered].handleInput(screens[r.hovered], mouse, 0)
		}
	}

	r.gallery.Update(dt, func(i int) (mgl32.Vec2, bool) {
		return core.NormalizePointer(mouse, screens[i])
	})

	viewHeight := float32(r.height)
	drawn := make([]bool, len(r.viewports))
	for i, v := range r.viewports {
		if !screens[i].Visible(viewHeight) {
			continue
		}
		drawn[i] = v.render(r.gallery.View(i), r.background)
	}

	rl.BeginDrawing()
	rl.ClearBackground(r.background)
	for i, v := range r.viewports {
		if drawn[i] {
			v.blit(screens[i], r.gallery.View(i).Opacity)
		}
	}
	r.updateStats()
	r.stats.Render()
	rl.EndDrawing()
}

// pollAssets finishes loads that arrived since the last frame
func (r *GalleryRenderer) pollAssets() {
	for _, h := range r.loader.Poll() {
		if model, ok := h.Value(); ok {
			r.lighting.Apply(model)
		}
		for i, v := range r.viewports {
			if v.handle != h {
				continue
			}
			switch h.Status() {
			case assets.Ready:
				r.gallery.MarkLoaded(i)
			case assets.Failed:
				r.gallery.MarkFailed(i)
			}
		}
	}
}

func (r *GalleryRenderer) relayout(width, height int) {
	r.width, r.height = width, height
	cells, contentHeight := core.GridLayout(len(r.viewports), width, r.grid)
	r.contentHeight = contentHeight
	for i, v := range r.viewports {
		v.resize(cells[i])
	}
	r.scrollBy(0)
}

func (r *GalleryRenderer) scrollBy(delta float32) {
	maxScroll := r.contentHeight - float32(r.height)
	if maxScroll < 0 {
		maxScroll = 0
	}
	r.scroll = mgl32.Clamp(r.scroll+delta, 0, maxScroll)
}

func (r *GalleryRenderer) updateStats() {
	failed := 0
	for i := range r.viewports {
		if r.gallery.Status(i) == assets.Failed {
			failed++
		}
	}
	r.stats.UpdateStats(rl.GetFPS(), r.gallery.Loaded(), failed, r.gallery.Len(), r.hovered, r.scroll)
}

// Terminate releases GPU resources and closes the window
func (r *GalleryRenderer) Terminate() {
	for _, v := range r.viewports {
		v.unloadTarget()
	}
	r.loader.Each(func(h *assets.Handle[rl.Model]) {
		if model, ok := h.Value(); ok {
			rl.UnloadModel(model)
		}
	})
	r.lighting.Unload()
	rl.CloseWindow()
}
