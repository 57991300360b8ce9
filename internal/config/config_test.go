package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodefield.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	p := cfg.Params(60)
	if p.MaxNodes != 80 || p.AreaPerNode != 15000 || p.LinkDistance != 150 {
		t.Errorf("Params() = %+v, want site defaults", p)
	}
	if p.Color != (color.NRGBA{R: 0, G: 255, B: 200, A: 255}) {
		t.Errorf("Params().Color = %v, want #00ffc8", p.Color)
	}
	if !p.IntroFade || p.FPS != 60 {
		t.Errorf("Params() IntroFade = %v FPS = %d, want true 60", p.IntroFade, p.FPS)
	}
}

func TestLoadFromPathSparse(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  resizable: false
field:
  seed: 7
  max_nodes: 40
  flow_period: 3s
  color: "#ff8800"
  intro_fade: false
ambient:
  enabled: true
`)

	cfg, got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != WindowHeight {
		t.Errorf("window = %dx%d, want 800x%d", cfg.Window.Width, cfg.Window.Height, WindowHeight)
	}
	if cfg.Window.Resizable == nil || *cfg.Window.Resizable {
		t.Error("resizable = true, want false")
	}
	if cfg.Field.FlowPeriod != 3*time.Second {
		t.Errorf("flow_period = %v, want 3s", cfg.Field.FlowPeriod)
	}

	p := cfg.Params(30)
	if p.Seed != 7 || p.MaxNodes != 40 || p.IntroFade {
		t.Errorf("Params() = %+v", p)
	}
	if p.LinkDistance != 150 {
		t.Errorf("LinkDistance = %v, want default 150", p.LinkDistance)
	}
	if p.Color != (color.NRGBA{R: 0xff, G: 0x88, B: 0, A: 0xff}) {
		t.Errorf("Color = %v, want #ff8800", p.Color)
	}
	if !cfg.Ambient.Enabled || cfg.Ambient.Volume != AmbientVolume {
		t.Errorf("ambient = %+v", cfg.Ambient)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "field: [", "parse config"},
		{"bad color", "field:\n  color: teal\n", "color"},
		{"negative size", "window:\n  width: -5\n", "window size"},
		{"loud ambient", "ambient:\n  volume: 3\n", "ambient volume"},
		{"tiny cells", "terminal:\n  cell_width: 1\n", "terminal cell"},
	}

	for _, tt := range tests {
		_, _, err := LoadFromPath(writeConfig(t, tt.body))
		if err == nil {
			t.Errorf("%s: LoadFromPath() error = nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}

	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFromPath(missing) error = nil")
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "field:\n  max_nodes: 5\n")
	t.Setenv(EnvConfig, path)

	if got := FindConfigPath(); got != path {
		t.Fatalf("FindConfigPath() = %q, want %q", got, path)
	}
	cfg, got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != path || cfg.Field.MaxNodes != 5 {
		t.Errorf("Load() = max_nodes %d from %q", cfg.Field.MaxNodes, got)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
	wd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Window.Width != WindowWidth {
		t.Errorf("width = %d, want %d", cfg.Window.Width, WindowWidth)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#00ffc8", color.NRGBA{R: 0, G: 255, B: 200, A: 255}, false},
		{"0a0e1a", color.NRGBA{R: 10, G: 14, B: 26, A: 255}, false},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{" #FFFFFF ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackgroundColorFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Background = "nope"
	if got := cfg.BackgroundColor(); got != (color.NRGBA{A: 255}) {
		t.Errorf("BackgroundColor() = %v, want opaque black", got)
	}
}
