package layout

import (
	"testing"

	"github.com/chewing/zhuyin-core/internal/phone"
)

// TestDefaultScenarioS1 reproduces SPEC_FULL.md §10 S1: Default layout,
// keys "5j/3" spell ㄓㄨㄥˇ, committing on the tone key.
func TestDefaultScenarioS1(t *testing.T) {
	km := New(Default)
	var st State

	for _, k := range []byte("5j/") {
		if b := km.Input(k, &st); b != Absorb {
			t.Fatalf("Input(%q) = %v, want Absorb", k, b)
		}
	}

	initial, medial, final, _ := phone.Decode(st.Phone())
	if initial != 9 || medial != 2 || final != 10 {
		t.Fatalf("after \"5j/\": (initial,medial,final) = (%d,%d,%d), want (9,2,10)", initial, medial, final)
	}

	if b := km.Input('3', &st); b != Commit {
		t.Fatalf("Input('3') = %v, want Commit", b)
	}
	if _, _, _, tone := phone.Decode(st.Phone()); tone != 3 {
		t.Fatalf("tone = %d, want 3", tone)
	}
}

// TestDefaultScenarioS4 reproduces S4: a tone key with no vowel yet yields
// NoWord and leaves the state untouched.
func TestDefaultScenarioS4(t *testing.T) {
	km := New(Default)
	var st State
	if b := km.Input('1', &st); b != NoWord {
		t.Fatalf("Input('1') on empty state = %v, want NoWord", b)
	}
	if !st.IsEmpty() {
		t.Fatal("state should remain empty after a rejected tone key")
	}
}

// TestHsuScenarioS2 reproduces S2: the ambiguous key 'j' commits a
// provisional reading with a live Alternate; the following key resolves it.
func TestHsuScenarioS2(t *testing.T) {
	km := New(Hsu)
	var st State

	if b := km.Input('j', &st); b != Absorb {
		t.Fatalf("Input('j') = %v, want Absorb", b)
	}
	if st.Phone() == st.Alternate {
		t.Fatal("current and alternate phone should differ right after the ambiguous key")
	}
	if st.Alternate == 0 {
		t.Fatal("Alternate should be populated after an ambiguous key")
	}

	if b := km.Input('d', &st); b != Absorb {
		t.Fatalf("Input('d') = %v, want Absorb", b)
	}
	if st.Alternate != 0 {
		t.Fatal("Alternate should be cleared once a later key resolves the ambiguity")
	}
	initial, medial, _, _ := phone.Decode(st.Phone())
	if initial != 13 || medial != 2 {
		t.Fatalf("after \"jd\": (initial,medial) = (%d,%d), want (13,2)", initial, medial)
	}
}

// TestHanyuPinyinScenarioS3 reproduces S3: the Latin buffer is exposed
// before the tone key, and the resulting phone matches S1's.
func TestHanyuPinyinScenarioS3(t *testing.T) {
	km := New(HanyuPinyin)
	var st State

	for _, k := range []byte("zhong") {
		if b := km.Input(k, &st); b != Absorb {
			t.Fatalf("Input(%q) = %v, want Absorb", k, b)
		}
	}
	if st.Latin != "zhong" {
		t.Fatalf("KeySequence = %q, want %q", st.Latin, "zhong")
	}

	if b := km.Input('3', &st); b != Commit {
		t.Fatalf("Input('3') = %v, want Commit", b)
	}
	initial, medial, final, tone := phone.Decode(st.Phone())
	if initial != 9 || medial != 2 || final != 10 || tone != 3 {
		t.Fatalf("got (%d,%d,%d,%d), want (9,2,10,3)", initial, medial, final, tone)
	}
	if st.Latin != "" {
		t.Fatalf("Latin scratch should be cleared after Commit, got %q", st.Latin)
	}
}

func TestPinyinUnmappedSequenceYieldsNoWord(t *testing.T) {
	km := New(HanyuPinyin)
	var st State
	for _, k := range []byte("qqq") {
		km.Input(k, &st)
	}
	if b := km.Input('1', &st); b != NoWord {
		t.Fatalf("Input('1') on unmapped sequence = %v, want NoWord", b)
	}
	if st.Latin != "" {
		t.Fatal("Latin scratch should be cleared after an unmapped sequence")
	}
}

func TestAllLayoutsConstructible(t *testing.T) {
	ids := []ID{Default, Hsu, IBM, GinYieh, Et, Et26, Dvorak, DvorakHsu, DachenCP26, HanyuPinyin, THLPinyin, MPS2Pinyin, Carpalx}
	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			km := New(id)
			if km.Name() != id.String() {
				t.Errorf("New(%v).Name() = %q, want %q", id, km.Name(), id.String())
			}
		})
	}
}
