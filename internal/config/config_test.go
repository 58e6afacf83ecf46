package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.CameraDepth != 600 {
		t.Errorf("expected camera depth 600, got %v", cfg.Scene.CameraDepth)
	}
	if cfg.Scene.Near != 100 || cfg.Scene.Far != 2000 {
		t.Errorf("expected near/far 100/2000, got %v/%v", cfg.Scene.Near, cfg.Scene.Far)
	}
	if cfg.Scene.TimeStep != 0.05 {
		t.Errorf("expected time step 0.05, got %v", cfg.Scene.TimeStep)
	}
	if cfg.Scene.ObjectWidth != 200 || cfg.Scene.ObjectHeight != 400 || cfg.Scene.ObjectSegments != 10 {
		t.Errorf("unexpected object defaults: %+v", cfg.Scene)
	}

	if cfg.Page.ReadyTimeout != 0 {
		t.Errorf("expected no ready timeout by default, got %v", cfg.Page.ReadyTimeout)
	}
	if cfg.Page.TexturedImages {
		t.Error("expected placeholder image planes by default")
	}

	if !cfg.Controls.Orbit {
		t.Error("expected orbit controls on by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

page:
  path: "site/page.yaml"
  ready_timeout: 5s
  textured_images: true

scene:
  camera_depth: 800
  time_step: 0.1
  shader_dir: "shaders"
  hot_reload: true

controls:
  orbit: false

logging:
  level: "debug"
  log_file: "sketch.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Page.Path != "site/page.yaml" {
		t.Errorf("expected page path site/page.yaml, got %s", cfg.Page.Path)
	}
	if cfg.Page.ReadyTimeout != 5*time.Second {
		t.Errorf("expected ready timeout 5s, got %v", cfg.Page.ReadyTimeout)
	}
	if !cfg.Page.TexturedImages {
		t.Error("expected textured images")
	}
	if cfg.Scene.CameraDepth != 800 {
		t.Errorf("expected camera depth 800, got %v", cfg.Scene.CameraDepth)
	}
	// Untouched keys keep their defaults.
	if cfg.Scene.Near != 100 {
		t.Errorf("expected near to stay 100, got %v", cfg.Scene.Near)
	}
	if !cfg.Scene.HotReload || cfg.Scene.ShaderDir != "shaders" {
		t.Errorf("expected shader dir and hot reload, got %+v", cfg.Scene)
	}
	if cfg.Controls.Orbit {
		t.Error("expected orbit controls off")
	}
	if cfg.Logging.LogFile != "sketch.log" {
		t.Errorf("expected log file 'sketch.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero height", func(c *Config) { c.Graphics.Height = 0 }},
		{"zero depth", func(c *Config) { c.Scene.CameraDepth = 0 }},
		{"far before near", func(c *Config) { c.Scene.Far = 50 }},
		{"no segments", func(c *Config) { c.Scene.ObjectSegments = 0 }},
		{"negative timeout", func(c *Config) { c.Page.ReadyTimeout = -time.Second }},
		{"no ocean texture", func(c *Config) { c.Scene.OceanTexture = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "page flag",
			setup: func() { *flagPage = "other/page.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Page.Path != "other/page.yaml" {
					t.Errorf("expected page other/page.yaml, got %s", cfg.Page.Path)
				}
			},
			teardown: func() { *flagPage = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "ready timeout flag",
			setup: func() { *flagReadyTimeout = 3 * time.Second },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Page.ReadyTimeout != 3*time.Second {
					t.Errorf("expected ready timeout 3s, got %v", cfg.Page.ReadyTimeout)
				}
			},
			teardown: func() { *flagReadyTimeout = 0 },
		},
		{
			name:  "shader dir flag",
			setup: func() { *flagShaderDir = "shaders" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.ShaderDir != "shaders" {
					t.Errorf("expected shader dir 'shaders', got %q", cfg.Scene.ShaderDir)
				}
			},
			teardown: func() { *flagShaderDir = "" },
		},
		{
			name:  "hot reload flag",
			setup: func() { *flagHotReload = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Scene.HotReload {
					t.Error("expected hot reload")
				}
			},
			teardown: func() { *flagHotReload = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Page.Path = "pages/home.yaml"
	cfg.Page.ReadyTimeout = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Page.Path != "pages/home.yaml" {
		t.Errorf("page path = %s, want pages/home.yaml", loaded.Page.Path)
	}
	if loaded.Page.ReadyTimeout != 2*time.Second {
		t.Errorf("ready timeout = %v, want 2s", loaded.Page.ReadyTimeout)
	}
}
