package rendering

import (
	"image/color"

	"cakegallery/assets"
	"cakegallery/core"
	"cakegallery/gallery"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is one cell of the grid: an offscreen target, a camera, and the
// asset it displays
type Viewport struct {
	rect     core.Rect // window space, before scrolling
	target   rl.RenderTexture2D
	hasRT    bool
	camera   core.Camera
	controls core.OrbitControls
	handle   *assets.Handle[rl.Model]
}

func newViewport(camera core.Camera, controls core.OrbitControls, handle *assets.Handle[rl.Model]) *Viewport {
	return &Viewport{
		camera:   camera,
		controls: controls,
		handle:   handle,
	}
}

// resize moves the viewport and reallocates its render target when the cell
// size changed
func (v *Viewport) resize(rect core.Rect) {
	sizeChanged := int32(rect.W) != int32(v.rect.W) || int32(rect.H) != int32(v.rect.H)
	v.rect = rect
	if v.hasRT && !sizeChanged {
		return
	}
	v.unloadTarget()
	if rect.W < 1 || rect.H < 1 {
		return
	}
	v.target = rl.LoadRenderTexture(int32(rect.W), int32(rect.H))
	v.hasRT = true
}

// handleInput feeds mouse interaction through the camera controls. With the
// default inspect-only controls the camera never moves.
func (v *Viewport) handleInput(screen core.Rect, mouse mgl32.Vec2, wheel float32) {
	if !v.controls.Enabled() || !screen.Contains(mouse) {
		return
	}
	in := core.ControlInput{}
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		in.Drag = mgl32.Vec2{delta.X, delta.Y}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.Pan = mgl32.Vec2{delta.X, delta.Y}
	}
	in.Wheel = wheel
	v.camera = v.controls.Apply(v.camera, in)
}

func (v *Viewport) rlCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(v.camera.Position),
		Target:     toVector3(v.camera.Target),
		Up:         toVector3(v.camera.Up),
		Fovy:       v.camera.FovY,
		Projection: rl.CameraPerspective,
	}
}

// render draws the model into the viewport's target. It reports false when
// there is nothing to show yet.
func (v *Viewport) render(view gallery.View, bg color.RGBA) bool {
	if !view.Loaded || !v.hasRT {
		return false
	}
	model, ok := v.handle.Value()
	if !ok {
		return false
	}
	model.Transform = toMatrix(view.Transform)

	rl.BeginTextureMode(v.target)
	rl.ClearBackground(bg)
	rl.BeginMode3D(v.rlCamera())
	rl.DrawModel(model, rl.Vector3{}, 1, rl.White)
	rl.EndMode3D()
	rl.EndTextureMode()
	return true
}

// blit copies the rendered target to the screen at its scrolled position
func (v *Viewport) blit(screen core.Rect, opacity float32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(v.target.Texture.Width), Height: -float32(v.target.Texture.Height)}
	rl.DrawTextureRec(v.target.Texture, src, rl.Vector2{X: screen.X, Y: screen.Y}, rl.Fade(rl.White, opacity))
}

func (v *Viewport) unloadTarget() {
	if v.hasRT {
		rl.UnloadRenderTexture(v.target)
		v.hasRT = false
	}
}
