// Package config handles sketch configuration loading and management.
package config

import "time"

// Config holds all sketch settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Page     PageConfig     `yaml:"page"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window and rendering settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"` // 0 = paced by vsync only

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// PageConfig describes where the page layout lives and how long to wait for it.
type PageConfig struct {
	Path string `yaml:"path"`
	// ReadyTimeout bounds the wait for fonts and images. Zero waits forever.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
	// TexturedImages draws page images on their planes instead of the
	// red placeholder.
	TexturedImages bool `yaml:"textured_images"`
}

// SceneConfig holds camera and animated object settings.
type SceneConfig struct {
	CameraDepth    float64 `yaml:"camera_depth"`
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	TimeStep       float64 `yaml:"time_step"`
	ObjectWidth    float64 `yaml:"object_width"`
	ObjectHeight   float64 `yaml:"object_height"`
	ObjectSegments int     `yaml:"object_segments"`
	OceanTexture   string  `yaml:"ocean_texture"`
	ShaderDir      string  `yaml:"shader_dir"` // empty = embedded shaders
	HotReload      bool    `yaml:"hot_reload"`
}

// ControlsConfig holds camera control settings.
type ControlsConfig struct {
	Orbit           bool    `yaml:"orbit"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "Page Sketch",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,

			ScreenshotDir: "screenshots",
		},
		Page: PageConfig{
			Path:           "assets/page.yaml",
			ReadyTimeout:   0,
			TexturedImages: false,
		},
		Scene: SceneConfig{
			CameraDepth:    600,
			Near:           100,
			Far:            2000,
			TimeStep:       0.05,
			ObjectWidth:    200,
			ObjectHeight:   400,
			ObjectSegments: 10,
			OceanTexture:   "img/ocean.png",
		},
		Controls: ControlsConfig{
			Orbit:           true,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
