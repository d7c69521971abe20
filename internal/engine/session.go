package engine

import (
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/chewing/zhuyin-core/internal/candidate"
	"github.com/chewing/zhuyin-core/internal/convert"
	"github.com/chewing/zhuyin-core/internal/editor"
	"github.com/chewing/zhuyin-core/internal/layout"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

// noCopy marks a type that must not be copied after first use; go vet flags
// a Lock/Unlock pair reached through a copy. Session embeds one for the
// same reason the teacher reserves defensive owner checks for its
// composition buffer: a session is exclusively owned by one driving thread
// (SPEC_FULL.md §5), and copying it would silently fork that ownership.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Session is a per-layout phonetic editor plus conversion state, owned
// exclusively by its driving goroutine. The zero value is not ready to
// use; construct one with Engine.NewSession.
type Session struct {
	_ noCopy

	engine  *Engine
	editor  *editor.Editor
	sources []candidate.Source

	syllables []phone.Phone

	// owner records the goroutine ID hint this Session was first driven
	// from, via runtime stack inspection, as an assertion checked on every
	// call; it never blocks a legitimate single-threaded caller.
	owner atomic.Uint64
}

func newSession(e *Engine, layoutID layout.ID, sources ...candidate.Source) *Session {
	return &Session{
		engine:  e,
		editor:  editor.New(layoutID),
		sources: sources,
	}
}

func (s *Session) checkOwner() {
	id := goroutineID()
	if !s.owner.CompareAndSwap(0, id) {
		if s.owner.Load() != id {
			// Concurrent access from multiple driver threads is undefined
			// per SPEC_FULL.md §5; this implementation chooses to detect
			// and panic rather than silently corrupt shared state.
			panic("engine: Session used from more than one goroutine")
		}
	}
}

// goroutineID extracts a cheap, non-authoritative identifier for the
// calling goroutine from its stack trace, good enough to distinguish "the
// same caller" from "a different one" across consecutive calls.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for _, b := range buf[len("goroutine "):n] {
		if b < '0' || b > '9' {
			break
		}
		id = id*10 + uint64(b-'0')
	}
	return id
}

// Input feeds one key into the session's phonetic editor. A Commit pushes
// the completed phone onto the syllable buffer (dropped silently once
// MaxSyllables is reached, so the buffer never exceeds its configured
// bound) and clears the editor back to Empty.
func (s *Session) Input(key byte) layout.Behavior {
	s.checkOwner()

	b := s.editor.Input(key)
	if b == layout.Commit {
		if len(s.syllables) < s.engine.cfg.MaxSyllables {
			s.syllables = append(s.syllables, s.editor.CurrentPhone())
		}
		s.editor.Clear()
	}
	return b
}

// Backspace removes the most recent contribution: from the in-progress
// editor if it is composing, otherwise the last committed syllable.
func (s *Session) Backspace() {
	s.checkOwner()

	if s.editor.IsEntering() {
		s.editor.Backspace()
		return
	}
	if n := len(s.syllables); n > 0 {
		s.syllables = s.syllables[:n-1]
	}
}

// Clear resets both the in-progress editor and the committed syllable
// buffer.
func (s *Session) Clear() {
	s.checkOwner()

	s.editor.Clear()
	s.syllables = nil
}

// Buffer returns the committed prefix: the text the conversion core's best
// segmentation produces for the syllables committed so far.
func (s *Session) Buffer() string {
	segments := convert.Convert(s.engine.tr, s.engine.dict, s.syllables, s.sources...)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Preedit returns the not-yet-committed tail: for Pinyin layouts, the raw
// Latin key sequence typed so far; otherwise the phonetic editor's
// in-progress syllable, rendered to its Zhuyin spelling.
func (s *Session) Preedit() string {
	if seq := s.editor.KeySequence(); seq != "" {
		return seq
	}
	if !s.editor.IsEntering() {
		return ""
	}
	return s.editor.CurrentPhone().ToUTF8()
}

// Candidates returns the ordered phrase candidates for the span covering
// every syllable currently in the buffer, merged with any external
// sources the Session was constructed with.
func (s *Session) Candidates() []candidate.Candidate {
	s.checkOwner()

	if len(s.syllables) == 0 {
		return nil
	}

	node := tree.Root
	hasNode := true
	for _, p := range s.syllables {
		if !hasNode {
			break
		}
		child, ok := s.engine.tr.LookupChild(node, uint16(p))
		if !ok {
			hasNode = false
			break
		}
		node = child
	}

	it := candidate.New(s.engine.tr, s.engine.dict, node, hasNode, s.syllables, s.sources...)
	var out []candidate.Candidate
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

// IsEntering reports whether the phonetic editor holds a partial syllable.
func (s *Session) IsEntering() bool {
	return s.editor.IsEntering()
}
