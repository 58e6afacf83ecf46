package sketch

import (
	"time"

	"github.com/Faultbox/pagesketch/internal/config"
)

// Options tunes the controller. Zero fields take the defaults below.
type Options struct {
	// Camera distance from the page plane; page pixels match world units at
	// this depth.
	Depth float64
	Near  float64
	Far   float64

	// TimeStep is added to the shader clock every frame.
	TimeStep float64

	// ReadyTimeout bounds the wait for page assets. Zero waits forever.
	ReadyTimeout time.Duration

	ObjectWidth    float64
	ObjectHeight   float64
	ObjectSegments int
	OceanTexture   string

	// TexturedImages draws each page image on its plane instead of the red
	// placeholder.
	TexturedImages bool
	// Orbit enables pointer orbit and zoom.
	Orbit           bool
	DragSensitivity float32
	ZoomSensitivity float32
}

// DefaultOptions returns the stock sketch settings.
func DefaultOptions() Options {
	return Options{
		Depth:          600,
		Near:           100,
		Far:            2000,
		TimeStep:       0.05,
		ObjectWidth:    200,
		ObjectHeight:   400,
		ObjectSegments: 10,
		OceanTexture:   "img/ocean.png",
	}
}

// OptionsFromConfig maps the loaded configuration onto controller options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Depth:          cfg.Scene.CameraDepth,
		Near:           cfg.Scene.Near,
		Far:            cfg.Scene.Far,
		TimeStep:       cfg.Scene.TimeStep,
		ReadyTimeout:   cfg.Page.ReadyTimeout,
		ObjectWidth:    cfg.Scene.ObjectWidth,
		ObjectHeight:   cfg.Scene.ObjectHeight,
		ObjectSegments: cfg.Scene.ObjectSegments,
		OceanTexture:   cfg.Scene.OceanTexture,
		TexturedImages: cfg.Page.TexturedImages,

		Orbit:           cfg.Controls.Orbit,
		DragSensitivity: cfg.Controls.DragSensitivity,
		ZoomSensitivity: cfg.Controls.ZoomSensitivity,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Depth <= 0 {
		o.Depth = d.Depth
	}
	if o.Near <= 0 {
		o.Near = d.Near
	}
	if o.Far <= 0 {
		o.Far = d.Far
	}
	if o.TimeStep == 0 {
		o.TimeStep = d.TimeStep
	}
	if o.ObjectWidth <= 0 {
		o.ObjectWidth = d.ObjectWidth
	}
	if o.ObjectHeight <= 0 {
		o.ObjectHeight = d.ObjectHeight
	}
	if o.ObjectSegments <= 0 {
		o.ObjectSegments = d.ObjectSegments
	}
	if o.OceanTexture == "" {
		o.OceanTexture = d.OceanTexture
	}
	return o
}
