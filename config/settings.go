package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type Settings struct {
	Window WindowSettings  `json:"window"`
	Grid   GridSettings    `json:"grid"`
	Camera CameraSettings  `json:"camera"`
	Motion MotionSettings  `json:"motion"`
	Lights LightSettings   `json:"lights"`
	Assets AssetSettings   `json:"assets"`
	Server ServerSettings  `json:"server"`
	Models []ModelSettings `json:"models"`
}

type WindowSettings struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Title      string   `json:"title"`
	TargetFPS  int      `json:"targetFps"`
	MSAA       bool     `json:"msaa"`
	Background [4]uint8 `json:"background"`
	ShowStats  bool     `json:"showStats"`
}

type GridSettings struct {
	CellHeight  float32 `json:"cellHeight"`
	Gap         float32 `json:"gap"`
	Padding     float32 `json:"padding"`
	ScrollSpeed float32 `json:"scrollSpeed"`
}

type CameraSettings struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FovY     float32    `json:"fovY"`

	// Interaction is inspection only unless these are switched on
	EnableZoom   bool `json:"enableZoom"`
	EnablePan    bool `json:"enablePan"`
	EnableRotate bool `json:"enableRotate"`
}

type MotionSettings struct {
	SmoothTime float32 `json:"smoothTime"`
	// TrackOutside keeps every model following the pointer even when it is
	// over another viewport. By default a viewport only sees the pointer
	// while it hovers that viewport.
	TrackOutside  bool    `json:"trackOutside"`
	RevealSeconds float32 `json:"revealSeconds"`
}

type Light struct {
	Position   [3]float32 `json:"position"`
	Color      [3]uint8   `json:"color"`
	Intensity  float32    `json:"intensity"`
	Angle      float32    `json:"angle,omitempty"`
	CastShadow bool       `json:"castShadow,omitempty"`
}

type LightSettings struct {
	Ambient     Light   `json:"ambient"`
	Directional Light   `json:"directional"`
	Spot        Light   `json:"spot"`
	Point       Light   `json:"point"`
	Decay       float32 `json:"decay"`
}

type AssetSettings struct {
	Root          string `json:"root"`
	Workers       int    `json:"workers"`
	DecodePerTick int    `json:"decodePerFrame"`
}

type ServerSettings struct {
	Addr             string `json:"addr"`
	UpdateIntervalMs int    `json:"updateIntervalMs"`
}

// ModelSettings places one asset in its own viewport
type ModelSettings struct {
	Path     string     `json:"path"`
	Scale    float32    `json:"scale"`
	Position [3]float32 `json:"position"`
}

var white = [3]uint8{255, 255, 255}

// Default returns the built-in gallery: nine cakes, each tuned with its own
// scale and offset so they appear at a similar size
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:      1280,
			Height:     800,
			Title:      "Cake Gallery",
			TargetFPS:  60,
			MSAA:       true,
			Background: [4]uint8{255, 255, 255, 255},
		},
		Grid: GridSettings{
			CellHeight:  350,
			Gap:         16,
			Padding:     16,
			ScrollSpeed: 60,
		},
		Camera: CameraSettings{
			Position: [3]float32{0, 3, 7},
			FovY:     45,
		},
		Motion: MotionSettings{
			SmoothTime:    0.2,
			RevealSeconds: 0.4,
		},
		Lights: LightSettings{
			Ambient:     Light{Color: white, Intensity: 3},
			Directional: Light{Position: [3]float32{2, 5, 3}, Color: white, Intensity: 3},
			Spot: Light{
				Position:   [3]float32{5, 10, 5},
				Color:      [3]uint8{0xff, 0xdd, 0xaa},
				Intensity:  3,
				Angle:      0.4,
				CastShadow: true,
			},
			Point: Light{Position: [3]float32{-3, 3, 3}, Color: white, Intensity: 2},
			Decay: 2,
		},
		Assets: AssetSettings{
			Root:          "public",
			Workers:       4,
			DecodePerTick: 1,
		},
		Server: ServerSettings{
			UpdateIntervalMs: 100,
		},
		Models: []ModelSettings{
			{Path: "/chocolate_cake.glb", Scale: 2},
			{Path: "/carrot_cake.glb", Scale: 20},
			{Path: "/cheese_cake_with_frosting.glb", Scale: 30},
			{Path: "/red_velvet_cake.glb", Scale: 2.6},
			{Path: "/sliced_cake.glb", Scale: 35},
			{Path: "/strawberry_cake.glb", Scale: 3.3, Position: [3]float32{0, 5, 0}},
			{Path: "/chocolatecake.glb", Scale: 1.3, Position: [3]float32{0, -1, 0}},
			{Path: "/RedVelvet.glb", Scale: 1.3, Position: [3]float32{0, -1, 0}},
			{Path: "/SuperHeroCake.glb", Scale: 4, Position: [3]float32{0, -1, 0}},
		},
	}
}

// Load returns the defaults overlaid with the JSON file at path. An empty path
// or a missing file yields the defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No %s found, using defaults", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	// A models list in the file replaces the built-in one instead of being
	// merged into it entry by entry
	defaults := settings.Models
	settings.Models = nil

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return Default(), fmt.Errorf("error parsing %s: %w", path, err)
	}
	if settings.Models == nil {
		settings.Models = defaults
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid %s: %w", path, err)
	}

	log.Printf("Loaded settings from %s: %d models", path, len(settings.Models))
	return settings, nil
}

// Validate checks the values the renderer cannot work around
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Grid.CellHeight <= 0 {
		return fmt.Errorf("grid cell height %.1f must be positive", s.Grid.CellHeight)
	}
	if s.Grid.Gap < 0 || s.Grid.Padding < 0 {
		return errors.New("grid gap and padding must not be negative")
	}
	if s.Camera.FovY <= 0 || s.Camera.FovY >= 180 {
		return fmt.Errorf("camera fovY %.1f out of range", s.Camera.FovY)
	}
	if s.Motion.SmoothTime < 0 || s.Motion.RevealSeconds < 0 {
		return errors.New("motion times must not be negative")
	}
	if s.Assets.Workers <= 0 || s.Assets.DecodePerTick <= 0 {
		return errors.New("asset workers and decodePerFrame must be positive")
	}
	for i, m := range s.Models {
		if strings.TrimSpace(m.Path) == "" {
			return fmt.Errorf("model %d: empty path", i)
		}
		if m.Scale <= 0 {
			return fmt.Errorf("model %d (%s): scale %.3f must be positive", i, m.Path, m.Scale)
		}
	}
	return nil
}

// AssetPath resolves a model path against the asset root. Paths are written
// web style, rooted at the asset directory.
func (s Settings) AssetPath(m ModelSettings) string {
	rel := strings.TrimPrefix(filepath.FromSlash(m.Path), string(filepath.Separator))
	return filepath.Join(s.Assets.Root, rel)
}
