package game

import (
	"bytes"
	"context"
	"errors"
)

// ErrQuit is returned by a decider whose player wants to stop the match.
var ErrQuit = errors.New("player quit")

// Memory is opaque per-seat state a decider carries between decisions. The
// engine hands it back unmodified on the seat's next call.
type Memory []byte

// Clone returns an independent copy of m.
func (m Memory) Clone() Memory {
	if m == nil {
		return nil
	}
	return bytes.Clone(m)
}

// Decider chooses an action for the acting seat. The returned action uses the
// Act encoding: -1 fold, 0 check, positive for the street total.
type Decider interface {
	Decide(ctx context.Context, snap Snapshot, mem Memory) (int, Memory, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, snap Snapshot, mem Memory) (int, Memory, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, snap Snapshot, mem Memory) (int, Memory, error) {
	return f(ctx, snap, mem)
}

// MemoryStore keeps each seat's memory between hands. Seats never see each
// other's memory.
type MemoryStore struct {
	seats [2]Memory
}

// Load returns a copy of the seat's memory.
func (s *MemoryStore) Load(seat int) Memory {
	return s.seats[seat].Clone()
}

// Store replaces the seat's memory with a copy of mem.
func (s *MemoryStore) Store(seat int, mem Memory) {
	s.seats[seat] = mem.Clone()
}
