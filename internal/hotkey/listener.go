// Package hotkey watches global key transitions and turns the trigger chord
// into note requests carrying a fresh clipboard snapshot.
package hotkey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/mobile/event/key"

	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/note"
	"github.com/example/fonotes/internal/snapshot"
)

// ErrUnsupported is returned by NewSource when no global key source exists
// for the current platform.
var ErrUnsupported = errors.New("global key listening is not supported on this platform")

// Event is one raw key transition. Auto-repeat shows up as repeated
// DirPress events without an intervening DirRelease.
type Event struct {
	Code      key.Code
	Direction key.Direction
}

// Source delivers raw key transitions until ctx is done or the underlying
// hook fails. fn is always called from the same goroutine.
type Source interface {
	Listen(ctx context.Context, fn func(Event)) error
}

// Submitter accepts requests on behalf of the event loop. It must be safe
// to call from a goroutine other than the loop's.
type Submitter interface {
	Submit(note.Request)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(note.Request)

func (f SubmitterFunc) Submit(r note.Request) { f(r) }

// Listener tracks held keys and emits one request per press of the chord.
// It is used from a single goroutine; the pressed set never leaves it.
type Listener struct {
	Source  Source
	Capture func() snapshot.Snapshot
	Submit  Submitter
	// Trigger decides whether the held keys form the chord. Nil means
	// DefaultChord.
	Trigger func(Set) bool
	// Window is the template for every requested note window.
	Window native.WindowConfig

	pressed Set
}

// Handle applies one key transition and reports whether it fired a
// request. The chord is only evaluated when a key goes from released to
// pressed, so auto-repeat never fires twice.
func (l *Listener) Handle(ev Event) bool {
	if l.pressed == nil {
		l.pressed = Set{}
	}
	switch ev.Direction {
	case key.DirPress:
		if l.pressed.Has(ev.Code) {
			return false
		}
		l.pressed[ev.Code] = struct{}{}
		if !l.trigger(l.pressed) {
			return false
		}
		l.fire()
		return true
	case key.DirRelease:
		delete(l.pressed, ev.Code)
	}
	return false
}

func (l *Listener) trigger(s Set) bool {
	if l.Trigger != nil {
		return l.Trigger(s)
	}
	return DefaultChord.Held(s)
}

func (l *Listener) fire() {
	snap := snapshot.Empty()
	if l.Capture != nil {
		snap = l.Capture()
	}
	req := note.NewRequest(l.Window, snap)
	slog.Debug("chord pressed", "content", snap.String())
	l.Submit.Submit(req)
}

// Run subscribes to the source and blocks until it stops.
func (l *Listener) Run(ctx context.Context) error {
	if l.Source == nil {
		return fmt.Errorf("listen for keys: %w", ErrUnsupported)
	}
	if err := l.Source.Listen(ctx, func(ev Event) { l.Handle(ev) }); err != nil {
		return fmt.Errorf("listen for keys: %w", err)
	}
	return nil
}
