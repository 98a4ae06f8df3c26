package gallery

import (
	"cakegallery/assets"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// PointerFunc reports the normalized pointer for viewport i and whether the
// pointer is over it
type PointerFunc func(i int) (pos mgl32.Vec2, over bool)

func (g *Gallery) updatePointers(pointer PointerFunc) {
	if pointer == nil {
		return
	}
	Pointer.Each(g.world, func(e *donburi.Entry) {
		m := Model.Get(e)
		p := Pointer.Get(e)

		pos, over := pointer(m.Index)
		p.Hovered = over
		if over || g.opts.TrackOutside {
			p.Pos = pos
		}
	})
}

// updateRotation damps each loaded model toward the rotation its pointer asks for.
// Models still loading stay at rest.
func (g *Gallery) updateRotation(dt float32) {
	Rotation.Each(g.world, func(e *donburi.Entry) {
		if Asset.Get(e).Status != assets.Ready {
			return
		}
		Rotation.Get(e).Update(Pointer.Get(e).Pos, g.opts.SmoothTime, dt)
	})
}

func (g *Gallery) updateReveal(dt float32) {
	Reveal.Each(g.world, func(e *donburi.Entry) {
		r := Reveal.Get(e)
		if r.Tween == nil {
			return
		}
		value, finished := r.Tween.Update(dt)
		r.Opacity = value
		if finished {
			r.Opacity = 1
			r.Tween = nil
		}
	})
}
