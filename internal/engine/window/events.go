package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/pagesketch/internal/engine/input"
)

// PollEvents drains the SDL event queue into events, reusing its storage.
// Returns true if the application should quit.
func (w *Window) PollEvents(events []input.Event) ([]input.Event, bool) {
	events = events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := translate(event); ok {
			events = append(events, ev)
		}
	}

	return events, input.HasQuit(events)
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			break
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			return input.Event{Type: input.EventQuit}, true
		case sdl.SCANCODE_F12:
			return input.Event{Type: input.EventScreenshot}, true
		}

	case *sdl.MouseMotionEvent:
		if e.State&sdl.ButtonLMask() != 0 {
			return input.Event{Type: input.EventDrag, DeltaX: float32(e.XRel), DeltaY: float32(e.YRel)}, true
		}

	case *sdl.MouseWheelEvent:
		return input.Event{Type: input.EventWheel, DeltaY: float32(e.Y)}, true
	}
	return input.Event{}, false
}
