package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagPage         = flag.String("page", "", "Path to page layout file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagReadyTimeout = flag.Duration("ready-timeout", 0, "Give up waiting for fonts and images after this long")
	flagShaderDir    = flag.String("shaders", "", "Load shaders from this directory instead of the built-in ones")
	flagHotReload    = flag.Bool("hot-reload", false, "Recompile shaders when their files change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagPage != "" {
		cfg.Page.Path = *flagPage
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagReadyTimeout > 0 {
		cfg.Page.ReadyTimeout = *flagReadyTimeout
	}
	if *flagShaderDir != "" {
		cfg.Scene.ShaderDir = *flagShaderDir
	}
	if *flagHotReload {
		cfg.Scene.HotReload = true
	}
}
