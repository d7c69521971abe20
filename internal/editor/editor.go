// Package editor implements the phonetic editor state machine: the
// per-session component that absorbs ASCII keys under a chosen keyboard
// layout and assembles them into a Bopomofo syllable.
package editor

import (
	"github.com/chewing/zhuyin-core/internal/layout"
	"github.com/chewing/zhuyin-core/internal/phone"
)

// Editor is a per-session phonetic state machine. The zero value is not
// ready to use; construct one with New.
//
// Editor is not safe for concurrent use: it is owned exclusively by the
// session driving it, per SPEC_FULL.md §5.
type Editor struct {
	keymap layout.KeyMap
	state  layout.State

	// keys records every key that was Absorb-ed or led to Commit, in order,
	// so Backspace can replay the prefix. This mirrors the teacher's
	// handleBackspace, which re-parses the whole raw buffer rather than
	// trying to undo a single transformation in place — necessary here too,
	// since deferred-disambiguation layouts make "undo the last step"
	// state-dependent in the same way Telex's double-letter rules are.
	keys []byte
}

// New creates an Editor for the given layout, starting in the Empty state.
func New(id layout.ID) *Editor {
	return &Editor{keymap: layout.New(id)}
}

// Input feeds one key into the editor and returns what it did.
func (e *Editor) Input(key byte) layout.Behavior {
	behavior := e.keymap.Input(key, &e.state)
	switch behavior {
	case layout.Absorb:
		e.keys = append(e.keys, key)
	case layout.Commit:
		e.keys = append(e.keys, key)
	}
	return behavior
}

// CurrentPhone returns the phone currently being assembled, zero if Empty.
func (e *Editor) CurrentPhone() phone.Phone {
	return e.state.Phone()
}

// AlternatePhone returns the deferred-disambiguation alternate, zero if
// there is none pending.
func (e *Editor) AlternatePhone() phone.Phone {
	return e.state.Alternate
}

// KeySequence returns the raw Latin scratch buffer for Pinyin layouts, and
// the empty string for every other layout.
func (e *Editor) KeySequence() string {
	return e.state.Latin
}

// IsEntering reports whether the editor holds a partial (Composing) phone.
func (e *Editor) IsEntering() bool {
	return !e.state.IsEmpty()
}

// Backspace removes the most recently contributed key and replays the
// remaining prefix from scratch, since deferred-disambiguation state cannot
// in general be undone by reverting a single field.
func (e *Editor) Backspace() {
	if len(e.keys) == 0 {
		return
	}
	e.keys = e.keys[:len(e.keys)-1]
	e.replay()
}

// Clear resets the editor to Empty.
func (e *Editor) Clear() {
	e.keys = nil
	e.state = layout.State{}
}

func (e *Editor) replay() {
	keys := e.keys
	e.keys = nil
	e.state = layout.State{}
	for _, k := range keys {
		// A Commit mid-replay means an earlier key sequence would already
		// have produced a full syllable (and been drained by the caller);
		// Backspace only ever trims a still-open composition, so this path
		// is defensive, not expected to run in practice.
		if e.keymap.Input(k, &e.state) == layout.Commit {
			e.state = layout.State{}
			continue
		}
		e.keys = append(e.keys, k)
	}
}
