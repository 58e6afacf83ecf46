package app

import (
	"github.com/Faultbox/pagesketch/internal/engine/camera"
	"github.com/Faultbox/pagesketch/internal/engine/renderer"
	"github.com/Faultbox/pagesketch/internal/engine/scene"
	"github.com/Faultbox/pagesketch/internal/engine/window"
)

// backend sizes the GL viewport in drawable pixels while the controller
// works in window coordinates; the two differ on high-DPI displays.
type backend struct {
	renderer *renderer.Renderer
	window   *window.Window
}

func (b backend) SetSize(_, _ int) {
	b.renderer.SetSize(b.window.DrawableSize())
}

func (b backend) Render(s *scene.Scene, cam *camera.Perspective) error {
	return b.renderer.Render(s, cam)
}
