package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"cakegallery/assets"
	"cakegallery/config"
	"cakegallery/core"
	"cakegallery/gallery"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	var (
		configPath = flag.String("config", "gallery.json", "Gallery settings file")
		assetRoot  = flag.String("assets", "", "Directory the model paths are relative to")
		width      = flag.Int("width", 0, "Window width to lay out for")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *assetRoot != "" {
		settings.Assets.Root = *assetRoot
	}
	if *width > 0 {
		settings.Window.Width = *width
	}

	fmt.Println("=== Gallery Check ===")

	// Check 1: Layout
	grid := core.GridSpec{
		CellHeight: settings.Grid.CellHeight,
		Gap:        settings.Grid.Gap,
		Padding:    settings.Grid.Padding,
	}
	cells, contentHeight := core.GridLayout(len(settings.Models), settings.Window.Width, grid)
	fmt.Printf("\nCheck 1: Layout at %dpx wide (%d columns, %.0fpx tall)\n",
		settings.Window.Width, core.Columns(settings.Window.Width), contentHeight)
	for i, m := range settings.Models {
		c := cells[i]
		fmt.Printf("  %d. %-32s scale=%-5g offset=(%g, %g, %g)  cell=(%.0f, %.0f %.0fx%.0f)\n",
			i+1, m.Path, m.Scale, m.Position[0], m.Position[1], m.Position[2], c.X, c.Y, c.W, c.H)
	}

	// Check 2: Assets on disk
	fmt.Printf("\nCheck 2: Assets under %s\n", settings.Assets.Root)
	missing := 0
	for _, m := range settings.Models {
		path := settings.AssetPath(m)
		_, err := assets.CheckModelFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Printf("  MISSING %s\n", path)
			missing++
		case err != nil:
			fmt.Printf("  BAD     %s: %v\n", path, err)
			missing++
		default:
			fmt.Printf("  ok      %s\n", path)
		}
	}

	// Check 3: Motion
	fmt.Println("\nCheck 3: Pointer response")
	fmt.Printf("  Smoothing time %.2fs, half-life %.3fs\n",
		settings.Motion.SmoothTime, core.HalfLife(settings.Motion.SmoothTime))
	if len(settings.Models) > 0 {
		edge := func(int) (mgl32.Vec2, bool) { return mgl32.Vec2{1, 1}, true }
		for _, at := range []float32{0.1, 0.25, 0.5, 1.0} {
			g := gallery.New(settings.Models[:1], gallery.OptionsFrom(settings))
			g.MarkLoaded(0)
			const dt = float32(1.0 / 60)
			for t := float32(0); t < at; t += dt {
				g.Update(dt, edge)
			}
			s := g.Snapshot()[0]
			fmt.Printf("  after %.2fs: yaw %6.1f° of %.1f°, pitch %5.2f° of %.2f°\n", at,
				core.RadiansToDegrees(s.Yaw), core.RadiansToDegrees(s.TargetYaw),
				core.RadiansToDegrees(s.Pitch), core.RadiansToDegrees(s.TargetPitch))
		}
	}

	if missing > 0 {
		fmt.Printf("\n%d of %d assets missing or unreadable\n", missing, len(settings.Models))
		os.Exit(1)
	}
	fmt.Println("\n=== Check Complete ===")
}
