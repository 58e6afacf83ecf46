package frame

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pagesketch/internal/logger"
)

// Loop runs frames back to back on the calling goroutine, which must own the
// GL context. Pacing comes from Present (a vsync'd buffer swap) and, when
// FPSLimit is set, from sleeping out the rest of the frame budget.
type Loop struct {
	// Poll runs before each frame; returning false ends the loop.
	Poll func() bool
	// Present runs after each frame.
	Present func()
	// FPSLimit caps the frame rate. Zero leaves pacing to Present.
	FPSLimit int

	// now and sleep are swapped out in tests.
	now   func() time.Time
	sleep func(time.Duration)

	stopped atomic.Bool
	frames  uint64
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Start implements Scheduler. It returns when Poll reports quit, Stop is
// called, ctx is done, or fn fails.
func (l *Loop) Start(ctx context.Context, fn Func) error {
	log := logger.Named("frame")
	now, sleep := l.now, l.sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	var budget time.Duration
	if l.FPSLimit > 0 {
		budget = time.Second / time.Duration(l.FPSLimit)
	}

	fpsTimer := now()
	fpsCount := 0

	log.Info("frame loop started", zap.Int("fps_limit", l.FPSLimit))
	for !l.stopped.Load() {
		if ctx.Err() != nil {
			break
		}
		if l.Poll != nil && !l.Poll() {
			break
		}

		frameStart := now()
		if err := fn(); err != nil {
			return fmt.Errorf("frame %d: %w", l.frames, err)
		}
		l.frames++

		if l.Present != nil {
			l.Present()
		}

		if budget > 0 {
			if elapsed := now().Sub(frameStart); elapsed < budget {
				sleep(budget - elapsed)
			}
		}

		fpsCount++
		if since := now().Sub(fpsTimer); since >= time.Second {
			log.Debug("fps", zap.Int("count", fpsCount), zap.Duration("window", since))
			fpsCount = 0
			fpsTimer = now()
		}
	}

	log.Info("frame loop stopped", zap.Uint64("frames", l.frames))
	return nil
}

// Stop implements Scheduler. Safe to call from fn or another goroutine; a
// Stop before Start makes Start return at once.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}
