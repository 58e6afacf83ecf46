package assets

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Faultbox/pagesketch/internal/engine/texture"
)

func countingManager(calls *atomic.Int32, gate <-chan struct{}) *Manager {
	m := NewManager()
	m.decode = func(path string) (*texture.Image, error) {
		calls.Add(1)
		if gate != nil {
			<-gate
		}
		if path == "missing.png" {
			return nil, errors.New("not found")
		}
		return &texture.Image{Path: path, Pixels: image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
	}
	return m
}

func TestManagerCachesByPath(t *testing.T) {
	var calls atomic.Int32
	m := countingManager(&calls, nil)

	a, err := m.Load("a.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := m.Load("a.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if a != b {
		t.Error("second load returned a different image")
	}
	if calls.Load() != 1 {
		t.Errorf("decode calls = %d, want 1", calls.Load())
	}
	if hits, misses := m.Cache().Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1, 1", hits, misses)
	}
}

func TestManagerDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	m := countingManager(&calls, nil)

	for i := 0; i < 2; i++ {
		if _, err := m.Load("missing.png"); err == nil {
			t.Fatal("expected error")
		}
	}
	if calls.Load() != 2 {
		t.Errorf("decode calls = %d, want 2", calls.Load())
	}
	if m.Cache().Len() != 0 {
		t.Errorf("cache len = %d, want 0", m.Cache().Len())
	}
}

func TestManagerConcurrentLoadsShareDecode(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	m := countingManager(&calls, gate)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*texture.Image, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := m.Load("shared.png")
			if err != nil {
				t.Errorf("Load: %v", err)
				return
			}
			results[i] = img
		}()
	}
	close(gate)
	wg.Wait()

	for i, img := range results {
		if img != results[0] {
			t.Errorf("result %d differs", i)
		}
	}
	// goroutines that reach Load after the first decode finished hit the cache
	if calls.Load() < 1 || calls.Load() > n {
		t.Errorf("decode calls = %d", calls.Load())
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Set("a", &texture.Image{})
	c.Get("a")
	c.Get("b")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("stats = %d/%d, want 0/0", hits, misses)
	}
}
