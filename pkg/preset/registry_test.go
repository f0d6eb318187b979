package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ritzau/taskboard/pkg/model"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	if r.Len() == 0 {
		t.Fatal("expected built-in presets")
	}

	p, ok := r.Lookup("gamedev")
	if !ok {
		t.Fatal("gamedev preset not found")
	}
	if !p.HasCategory("Art") {
		t.Errorf("expected gamedev to contain Art, got %v", p.Categories)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("lookup of unknown preset should fail")
	}
}

func TestNewRejectsInvalidPresets(t *testing.T) {
	tests := []struct {
		name    string
		presets []model.Preset
	}{
		{"empty", nil},
		{"missing id", []model.Preset{{Label: "x"}}},
		{"duplicate id", []model.Preset{{ID: "a"}, {ID: "a"}}},
		{"duplicate category", []model.Preset{{ID: "a", Categories: []model.Category{{Name: "Art"}, {Name: "Art"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.presets); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	r := Default()
	presets := r.Presets()
	presets[0].Categories[0].Name = "Changed"

	p := r.First()
	if p.Categories[0].Name == "Changed" {
		t.Error("registry was modified through a returned copy")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.toml")
	content := `
[[presets]]
id = "film"
label = "Film"
categories = [
  { name = "Camera", color = "#111111" },
  { name = "Sound", color = "#222222" },
]

[[presets]]
id = "tiny"
categories = []
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write preset file: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("expected 2 presets, got %d", r.Len())
	}
	film := r.First()
	if film.ID != "film" || len(film.Categories) != 2 || film.Categories[1].Name != "Sound" {
		t.Errorf("unexpected first preset %+v", film)
	}
	tiny, _ := r.Lookup("tiny")
	if tiny.Label != "tiny" {
		t.Errorf("expected label to default to id, got %q", tiny.Label)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
