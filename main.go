package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"cakegallery/config"
	"cakegallery/gallery"
	"cakegallery/rendering"
	"cakegallery/server"
)

func init() {
	// raylib must stay on the thread that created the window
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "gallery.json", "Gallery settings file")
		assetRoot  = flag.String("assets", "", "Directory the model paths are relative to")
		width      = flag.Int("width", 0, "Window width")
		height     = flag.Int("height", 0, "Window height")
		listen     = flag.String("listen", "", "Serve viewport state over websocket on this address")
		showStats  = flag.Bool("stats", false, "Show the stats overlay at startup")
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
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *listen != "" {
		settings.Server.Addr = *listen
	}
	if *showStats {
		settings.Window.ShowStats = true
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	fmt.Println("=== Cake Gallery ===")
	fmt.Printf("Models: %d\n", len(settings.Models))
	fmt.Printf("Assets: %s\n", settings.Assets.Root)
	fmt.Printf("Window: %dx%d\n", settings.Window.Width, settings.Window.Height)
	fmt.Println("\nControls:")
	fmt.Println("  Mouse: Move over a cake to turn it")
	fmt.Println("  Scroll: Scroll the gallery")
	fmt.Println("  F1: Toggle stats")
	fmt.Println("  ESC: Exit")

	g := gallery.New(settings.Models, gallery.OptionsFrom(settings))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *server.Hub
	if settings.Server.Addr != "" {
		hub = server.NewHub(time.Duration(settings.Server.UpdateIntervalMs) * time.Millisecond)
		go func() {
			if err := hub.Serve(ctx, settings.Server.Addr); err != nil {
				log.Printf("Telemetry server stopped: %v", err)
			}
		}()
	}

	renderer, err := rendering.NewGalleryRenderer(settings, g)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Terminate()

	lastPublish := time.Time{}

	for !renderer.ShouldClose() {
		renderer.Frame()

		if hub != nil && time.Since(lastPublish) >= hub.Interval() {
			hub.Publish(g.Snapshot())
			lastPublish = time.Now()
		}
	}

	fmt.Println("\nShutting down...")
}
