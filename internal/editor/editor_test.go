package editor

import (
	"testing"

	"github.com/chewing/zhuyin-core/internal/layout"
	"github.com/chewing/zhuyin-core/internal/phone"
)

func TestEditorScenarioS1(t *testing.T) {
	e := New(layout.Default)
	for _, k := range []byte("5j/") {
		if b := e.Input(k); b != layout.Absorb {
			t.Fatalf("Input(%q) = %v, want Absorb", k, b)
		}
	}
	if !e.IsEntering() {
		t.Fatal("editor should be composing after partial input")
	}
	if b := e.Input('3'); b != layout.Commit {
		t.Fatalf("Input('3') = %v, want Commit", b)
	}
	if !e.CurrentPhone().IsCommittable() {
		t.Fatal("CurrentPhone immediately after Commit should be committable")
	}
}

func TestEditorBackspaceReplaysPrefix(t *testing.T) {
	e := New(layout.Default)
	e.Input('5') // initial
	e.Input('j') // medial
	e.Input('/') // final

	e.Backspace() // removes final
	if !e.IsEntering() {
		t.Fatal("editor should still be composing after removing one of three keys")
	}
	_, _, final, _ := phone.Decode(e.CurrentPhone())
	if final != 0 {
		t.Fatalf("final = %d, want 0 after removing the final key", final)
	}

	e.Backspace()
	e.Backspace()
	if e.IsEntering() {
		t.Fatal("editor should be Empty once every key has been backspaced")
	}
}

func TestEditorClear(t *testing.T) {
	e := New(layout.Default)
	e.Input('5')
	e.Input('j')
	e.Clear()
	if e.IsEntering() {
		t.Fatal("editor should be Empty after Clear")
	}
	if e.CurrentPhone() != 0 {
		t.Fatal("CurrentPhone should be zero after Clear")
	}
}

func TestEditorHsuAlternatePhone(t *testing.T) {
	e := New(layout.Hsu)
	e.Input('j')
	if e.AlternatePhone() == 0 {
		t.Fatal("AlternatePhone should be populated after an ambiguous key")
	}
	if e.AlternatePhone() == e.CurrentPhone() {
		t.Fatal("AlternatePhone should differ from CurrentPhone while the ambiguity is pending")
	}
	e.Input('d')
	if e.AlternatePhone() != 0 {
		t.Fatal("AlternatePhone should clear once the ambiguity resolves")
	}
}

func TestEditorPinyinKeySequence(t *testing.T) {
	e := New(layout.HanyuPinyin)
	for _, k := range []byte("zhong") {
		e.Input(k)
	}
	if e.KeySequence() != "zhong" {
		t.Fatalf("KeySequence() = %q, want %q", e.KeySequence(), "zhong")
	}
	if b := e.Input('3'); b != layout.Commit {
		t.Fatalf("Input('3') = %v, want Commit", b)
	}
	if e.KeySequence() != "" {
		t.Fatal("KeySequence should clear once the Pinyin buffer commits")
	}
}

func TestEditorEmptyToneKeyIsNoWord(t *testing.T) {
	e := New(layout.Default)
	if b := e.Input('1'); b != layout.NoWord {
		t.Fatalf("Input('1') on empty editor = %v, want NoWord", b)
	}
	if e.IsEntering() {
		t.Fatal("editor should remain Empty after a rejected tone key")
	}
}
