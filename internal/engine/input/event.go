// Package input defines the platform-neutral events the sketch reacts to.
// The SDL translation lives with the window, so code that only consumes
// events builds without cgo.
package input

// EventType identifies what happened.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventDrag  // pointer moved with the primary button held
	EventWheel // scroll; positive DeltaY scrolls away from the user
	EventScreenshot
)

var eventNames = [...]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventWindowResize: "resize",
	EventDrag:         "drag",
	EventWheel:        "wheel",
	EventScreenshot:   "screenshot",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is a platform event reduced to what the sketch reacts to.
type Event struct {
	Type   EventType
	Width  int
	Height int
	DeltaX float32
	DeltaY float32
}

// HasQuit reports whether events contain a quit request.
func HasQuit(events []Event) bool {
	for _, ev := range events {
		if ev.Type == EventQuit {
			return true
		}
	}
	return false
}
