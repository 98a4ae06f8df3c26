package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDefaultGallery checks the built-in model list
func TestDefaultGallery(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if len(s.Models) != 9 {
		t.Fatalf("got %d default models, want 9", len(s.Models))
	}
	if s.Models[0].Path != "/chocolate_cake.glb" || s.Models[0].Scale != 2 {
		t.Errorf("first model = %+v", s.Models[0])
	}
	if s.Models[5].Position != [3]float32{0, 5, 0} {
		t.Errorf("strawberry cake offset = %v", s.Models[5].Position)
	}
	if s.Camera.EnableZoom || s.Camera.EnablePan || s.Camera.EnableRotate {
		t.Error("camera controls enabled by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Models) != len(Default().Models) {
		t.Errorf("got %d models, want defaults", len(s.Models))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Window.Title != "Cake Gallery" {
		t.Errorf("title = %q", s.Window.Title)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeSettings(t, `{
		"window": {"width": 600},
		"motion": {"smoothTime": 0.5},
		"models": [
			{"path": "/a.glb", "scale": 1.5},
			{"path": "/b.glb", "scale": 3, "position": [0, -1, 0]}
		]
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Window.Width != 600 || s.Window.Height != 800 {
		t.Errorf("window = %dx%d, want 600x800", s.Window.Width, s.Window.Height)
	}
	if s.Motion.SmoothTime != 0.5 {
		t.Errorf("smoothTime = %f", s.Motion.SmoothTime)
	}
	if len(s.Models) != 2 {
		t.Fatalf("got %d models, want 2", len(s.Models))
	}
	// Entries from the file must not inherit fields from the defaults
	if s.Models[0].Position != [3]float32{} {
		t.Errorf("model 0 position = %v, want origin", s.Models[0].Position)
	}
	if s.Models[1].Position != [3]float32{0, -1, 0} {
		t.Errorf("model 1 position = %v", s.Models[1].Position)
	}
}

func TestLoadEmptyModelList(t *testing.T) {
	s, err := Load(writeSettings(t, `{"models": []}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Models) != 0 {
		t.Errorf("got %d models, want none", len(s.Models))
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `{"window": `, "error parsing"},
		{"unknown field", `{"colour": "red"}`, "error parsing"},
		{"zero scale", `{"models": [{"path": "/a.glb", "scale": 0}]}`, "scale"},
		{"negative scale", `{"models": [{"path": "/a.glb", "scale": -2}]}`, "scale"},
		{"empty path", `{"models": [{"path": " ", "scale": 1}]}`, "empty path"},
		{"bad fov", `{"camera": {"fovY": 0}}`, "fovY"},
		{"no workers", `{"assets": {"workers": 0}}`, "workers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeSettings(t, tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestAssetPath(t *testing.T) {
	s := Default()
	s.Assets.Root = "public"
	got := s.AssetPath(ModelSettings{Path: "/chocolate_cake.glb"})
	if want := filepath.Join("public", "chocolate_cake.glb"); got != want {
		t.Errorf("AssetPath = %q, want %q", got, want)
	}
	got = s.AssetPath(ModelSettings{Path: "nested/cake.glb"})
	if want := filepath.Join("public", "nested", "cake.glb"); got != want {
		t.Errorf("AssetPath = %q, want %q", got, want)
	}
}
