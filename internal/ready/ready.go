// Package ready joins independent asset-readiness signals into one barrier.
package ready

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/pagesketch/internal/logger"
)

// ErrTimeout is returned when signals are still pending at the deadline.
var ErrTimeout = errors.New("readiness timeout")

// Signal is one thing to wait for, such as a font family or a batch of images.
type Signal struct {
	Name string
	// Wait blocks until the signal resolves. It should return promptly with
	// ctx.Err() once ctx is done.
	Wait func(ctx context.Context) error
}

// FromChannel returns a signal that resolves when ch is closed or receives.
func FromChannel(name string, ch <-chan struct{}) Signal {
	return Signal{
		Name: name,
		Wait: func(ctx context.Context) error {
			select {
			case <-ch:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// Options tunes Wait.
type Options struct {
	// Timeout bounds the whole wait. Zero waits until ctx is done.
	Timeout time.Duration
}

// Wait runs every signal concurrently and returns nil once all of them have
// resolved, in whatever order. The first failure cancels the others and is
// returned. If ctx is canceled or the timeout expires first, Wait returns
// without waiting for signals that ignore cancellation.
func Wait(ctx context.Context, opts Options, signals ...Signal) error {
	log := logger.Named("ready")
	parent := ctx

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var (
		mu       sync.Mutex
		resolved = make([]bool, len(signals))
	)
	pending := func() string {
		mu.Lock()
		defer mu.Unlock()
		var names []string
		for i, ok := range resolved {
			if !ok {
				names = append(names, signals[i].Name)
			}
		}
		return strings.Join(names, ", ")
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range signals {
		g.Go(func() error {
			start := time.Now()
			if err := s.Wait(gctx); err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			mu.Lock()
			resolved[i] = true
			mu.Unlock()
			log.Debug("signal resolved", zap.String("signal", s.Name), zap.Duration("after", time.Since(start)))
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}

	if parent.Err() != nil {
		return fmt.Errorf("waiting on %s: %w", pending(), parent.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && opts.Timeout > 0 {
		return fmt.Errorf("%w after %v, still waiting on: %s", ErrTimeout, opts.Timeout, pending())
	}
	if ctx.Err() != nil {
		return fmt.Errorf("waiting on %s: %w", pending(), ctx.Err())
	}
	return err
}
