package note

import (
	"errors"
	"fmt"
	"slices"

	"github.com/example/fonotes/internal/native"
)

// ErrDuplicateID is returned when a note is added under an id already in use.
var ErrDuplicateID = errors.New("note id already registered")

// Registry is the set of live notes in insertion order. It is owned by the
// event loop goroutine and is not safe for concurrent use.
type Registry struct {
	notes []*Note
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add inserts n. Two live notes never share a window id.
func (r *Registry) Add(n *Note) error {
	if r.Get(n.ID()) != nil {
		return fmt.Errorf("%w: %d", ErrDuplicateID, n.ID())
	}
	r.notes = append(r.notes, n)
	return nil
}

// Get returns the note for id, or nil when none is registered.
func (r *Registry) Get(id native.WindowID) *Note {
	for _, n := range r.notes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// Remove unregisters the note for id and returns it. The caller is
// responsible for releasing it.
func (r *Registry) Remove(id native.WindowID) *Note {
	idx := slices.IndexFunc(r.notes, func(n *Note) bool { return n.ID() == id })
	if idx < 0 {
		return nil
	}
	n := r.notes[idx]
	r.notes = slices.Delete(r.notes, idx, idx+1)
	return n
}

// Len returns the number of live notes.
func (r *Registry) Len() int { return len(r.notes) }

// Notes returns the live notes in insertion order.
func (r *Registry) Notes() []*Note { return slices.Clone(r.notes) }
