package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/plus3/planets/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultTitle    = "n-Body Simulation"
	DefaultScene    = "simulation.yaml"
	DefaultAssets   = "assets"
	DefaultFontSize = 16.0
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Trace  TraceConfig  `yaml:"trace"`
	Labels LabelConfig  `yaml:"labels"`
	Scene  string       `yaml:"scene"`
	Assets string       `yaml:"assets"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
}

type CameraConfig struct {
	Zoom      float64 `yaml:"zoom"`
	ZoomStep  float64 `yaml:"zoom_step"`
	ZoomSteps int     `yaml:"zoom_steps"`
}

type TraceConfig struct {
	SpawnInterval int     `yaml:"spawn_interval"`
	Lifetime      int     `yaml:"lifetime"`
	InitialAlpha  float64 `yaml:"initial_alpha"`
}

type LabelConfig struct {
	FontSize float64 `yaml:"font_size"`
}

func DefaultConfig() *Config {
	trace := render.DefaultTraceSettings()
	return &Config{
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Fullscreen: true,
			Title:      DefaultTitle,
		},
		Camera: CameraConfig{
			Zoom:      render.DefaultZoom,
			ZoomStep:  render.DefaultZoomStep,
			ZoomSteps: render.DefaultZoomSteps,
		},
		Trace: TraceConfig{
			SpawnInterval: trace.SpawnInterval,
			Lifetime:      trace.Lifetime,
			InitialAlpha:  trace.InitialAlpha,
		},
		Labels: LabelConfig{
			FontSize: DefaultFontSize,
		},
		Scene:  DefaultScene,
		Assets: DefaultAssets,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidResolution)
	}
	if c.Camera.Zoom <= 0 {
		return fmt.Errorf("config: camera zoom must be positive, got %g", c.Camera.Zoom)
	}
	if c.Trace.SpawnInterval <= 0 || c.Trace.Lifetime <= 0 {
		return fmt.Errorf("config: trace spawn_interval and lifetime must be positive")
	}
	return nil
}

// ParseResolution parses a "WIDTHxHEIGHT" string such as "1920x1080".
func ParseResolution(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidResolution)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidResolution)
	}
	return width, height, nil
}

// CameraSettings builds the initial camera.
func (c *Config) CameraSettings() render.Camera {
	return render.NewCamera(c.Camera.Zoom, c.Camera.ZoomStep, c.Camera.ZoomSteps)
}

func (c *Config) TraceSettings() render.TraceSettings {
	return render.TraceSettings{
		SpawnInterval: c.Trace.SpawnInterval,
		Lifetime:      c.Trace.Lifetime,
		InitialAlpha:  c.Trace.InitialAlpha,
	}
}

// RenderOptions assembles renderer options from the camera, trace and label sections.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Camera:   c.CameraSettings(),
		Trace:    c.TraceSettings(),
		FontSize: c.Labels.FontSize,
	}
}
