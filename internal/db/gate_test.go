package db

import (
	"errors"
	"sync"
	"testing"
)

func TestGate_Exclusive(t *testing.T) {
	gate := NewGate()

	var inside, maxInside int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = gate.Do(func() error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder inside the gate, observed %d", maxInside)
	}
}

func TestGate_PropagatesError(t *testing.T) {
	gate := NewGate()
	want := errors.New("store failure")

	if got := gate.Do(func() error { return want }); got != want {
		t.Errorf("Do returned %v; want %v", got, want)
	}
}

func TestGate_ReleasedAfterError(t *testing.T) {
	gate := NewGate()
	_ = gate.Do(func() error { return errors.New("boom") })

	done := make(chan struct{})
	go func() {
		_ = gate.Do(func() error { return nil })
		close(done)
	}()
	<-done
}
