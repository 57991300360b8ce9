// Package config loads nodefield settings.
//
// Config file locations (priority order):
//  1. $NODEFIELD_CONFIG
//  2. ./nodefield.yaml
//  3. ~/.config/nodefield/config.yaml
//
// No file means defaults.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/nodefield/internal/field"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "nodefield - Esc/Q: quit, S: save snapshot"

	TPS = 60

	// Terminal cells are roughly twice as tall as wide.
	CellWidth  = 8
	CellHeight = 16

	AmbientVolume    = 0.15
	AmbientFrequency = 110.0
)

const EnvConfig = "NODEFIELD_CONFIG"

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Field    FieldConfig    `yaml:"field"`
	Ambient  AmbientConfig  `yaml:"ambient"`
	Terminal TerminalConfig `yaml:"terminal"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable *bool  `yaml:"resizable,omitempty"`
	TPS       int    `yaml:"tps"`
}

type FieldConfig struct {
	Seed            uint64        `yaml:"seed,omitempty"`
	MaxNodes        int           `yaml:"max_nodes"`
	AreaPerNode     float64       `yaml:"area_per_node"`
	LinkDistance    float64       `yaml:"link_distance"`
	InfluenceRadius float64       `yaml:"influence_radius"`
	PushStrength    float64       `yaml:"push_strength"`
	Speed           float64       `yaml:"speed"`
	MinRadius       float64       `yaml:"min_radius"`
	RadiusSpread    float64       `yaml:"radius_spread"`
	PulseStep       float64       `yaml:"pulse_step"`
	FlowPeriod      time.Duration `yaml:"flow_period"`
	Color           string        `yaml:"color"`
	Background      string        `yaml:"background"`
	IntroFade       bool          `yaml:"intro_fade"`
}

type AmbientConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`
	Frequency float64 `yaml:"frequency"`
}

type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	FPS        int `yaml:"fps"`
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when defaults are used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, path, nil
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}

	candidates := []string{"nodefield.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "nodefield", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func DefaultConfig() *Config {
	resizable := true
	p := field.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: &resizable,
			TPS:       TPS,
		},
		Field: FieldConfig{
			MaxNodes:        p.MaxNodes,
			AreaPerNode:     p.AreaPerNode,
			LinkDistance:    p.LinkDistance,
			InfluenceRadius: p.InfluenceRadius,
			PushStrength:    p.PushStrength,
			Speed:           p.Speed,
			MinRadius:       p.MinRadius,
			RadiusSpread:    p.RadiusSpread,
			PulseStep:       p.PulseStep,
			FlowPeriod:      p.FlowPeriod,
			Color:           "#00ffc8",
			Background:      "#0a0e1a",
			IntroFade:       true,
		},
		Ambient: AmbientConfig{
			Volume:    AmbientVolume,
			Frequency: AmbientFrequency,
		},
		Terminal: TerminalConfig{
			CellWidth:  CellWidth,
			CellHeight: CellHeight,
			FPS:        30,
		},
	}
}

// applyDefaults fills zero values left by a sparse file
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Window.Width == 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Resizable == nil {
		c.Window.Resizable = d.Window.Resizable
	}
	if c.Window.TPS == 0 {
		c.Window.TPS = d.Window.TPS
	}
	if c.Field.FlowPeriod == 0 {
		c.Field.FlowPeriod = d.Field.FlowPeriod
	}
	if c.Field.Color == "" {
		c.Field.Color = d.Field.Color
	}
	if c.Field.Background == "" {
		c.Field.Background = d.Field.Background
	}
	if c.Terminal.CellWidth == 0 {
		c.Terminal.CellWidth = d.Terminal.CellWidth
	}
	if c.Terminal.CellHeight == 0 {
		c.Terminal.CellHeight = d.Terminal.CellHeight
	}
	if c.Terminal.FPS == 0 {
		c.Terminal.FPS = d.Terminal.FPS
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Field.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("max_nodes %d must not be negative", c.Field.MaxNodes))
	}
	if c.Field.AreaPerNode <= 0 {
		errs = append(errs, fmt.Errorf("area_per_node %v must be positive", c.Field.AreaPerNode))
	}
	if c.Field.LinkDistance <= 0 || c.Field.InfluenceRadius <= 0 {
		errs = append(errs, errors.New("link_distance and influence_radius must be positive"))
	}
	if c.Field.MinRadius < 1 {
		errs = append(errs, fmt.Errorf("min_radius %v must be at least 1", c.Field.MinRadius))
	}
	if _, err := ParseColor(c.Field.Color); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if _, err := ParseColor(c.Field.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if c.Ambient.Volume < 0 || c.Ambient.Volume > 1 {
		errs = append(errs, fmt.Errorf("ambient volume %v outside [0, 1]", c.Ambient.Volume))
	}
	if c.Ambient.Enabled && c.Ambient.Frequency <= 0 {
		errs = append(errs, fmt.Errorf("ambient frequency %v must be positive", c.Ambient.Frequency))
	}
	if c.Terminal.CellWidth < 2 || c.Terminal.CellHeight < 4 {
		errs = append(errs, fmt.Errorf("terminal cell %dx%d must be at least 2x4", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Terminal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("terminal fps %d must be positive", c.Terminal.FPS))
	}
	return errors.Join(errs...)
}

// Params converts the field section. fps is the tick rate of the host that
// will drive the field. Call Validate first.
func (c *Config) Params(fps int) field.Params {
	p := field.DefaultParams()
	f := c.Field
	p.Seed = f.Seed
	p.MaxNodes = f.MaxNodes
	p.AreaPerNode = f.AreaPerNode
	p.LinkDistance = f.LinkDistance
	p.InfluenceRadius = f.InfluenceRadius
	p.PushStrength = f.PushStrength
	p.Speed = f.Speed
	p.MinRadius = f.MinRadius
	p.RadiusSpread = f.RadiusSpread
	p.PulseStep = f.PulseStep
	p.FlowPeriod = f.FlowPeriod
	p.IntroFade = f.IntroFade
	p.FPS = fps
	if col, err := ParseColor(f.Color); err == nil {
		p.Color = col
	}
	return p
}

// BackgroundColor returns the parsed background, black if it does not parse.
func (c *Config) BackgroundColor() color.NRGBA {
	col, err := ParseColor(c.Field.Background)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return col
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
