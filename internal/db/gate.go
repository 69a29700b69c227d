package db

import "sync"

// Gate serializes access to the store: at most one store round-trip runs at
// any instant, across all tables. Repositories take it for the duration of a
// single query or exec, never across business logic.
//
// This trivially upholds the username uniqueness invariant under concurrent
// registrations and keeps every insert serialized. Throughput is traded for
// correctness, which suits a light directory workload.
type Gate struct {
	mu sync.Mutex
}

// NewGate returns a Gate ready for use.
func NewGate() *Gate {
	return &Gate{}
}

// Do runs fn while holding the gate.
func (g *Gate) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}
