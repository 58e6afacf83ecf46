// Package frame schedules per-frame work. A Scheduler replaces a
// self-rescheduling animation callback with something that can be stopped,
// and, in tests, stepped one frame at a time.
package frame

import (
	"context"
	"errors"
)

// ErrStopped is returned by Manual.Step after Stop or before Start.
var ErrStopped = errors.New("frame scheduler not running")

// Func is the work done once per frame.
type Func func() error

// Scheduler drives a Func once per frame until stopped.
type Scheduler interface {
	// Start begins calling fn. Display-paced schedulers block until the
	// loop ends; the returned error is the first error fn returned, or nil
	// on Stop or ctx cancellation.
	Start(ctx context.Context, fn Func) error
	// Stop ends the loop after the current frame.
	Stop()
}
