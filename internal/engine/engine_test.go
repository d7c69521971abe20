package engine

import (
	"errors"
	"testing"

	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/layout"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

// testEngine builds an in-memory Engine over a single-syllable phrase
// ("種", zhong3) plus a two-syllable phrase sharing its first syllable
// ("種國", zhong3 guo2), using two syllables the HanyuPinyin table in the
// layout package actually maps, via OpenWith so no data directory is needed.
func testEngine(t *testing.T) *Engine {
	t.Helper()

	zhong3, err := phone.Encode(9, 2, 10, 3) // ㄓㄨㄥˇ, matching the layout package's golden scenario
	if err != nil {
		t.Fatal(err)
	}
	guo2, err := phone.Encode(10, 2, 2, 2) // ㄍㄨㄛˊ
	if err != nil {
		t.Fatal(err)
	}

	blob, offsets := dict.Encode([]string{"種", "種國"})
	entries := []tree.Entry{
		{Phones: []uint16{uint16(zhong3)}, Offset: offsets[0], Freq: 50},
		{Phones: []uint16{uint16(zhong3), uint16(guo2)}, Offset: offsets[1], Freq: 5000},
	}
	tr, err := tree.New(tree.Encode(tree.Build(entries)), false)
	if err != nil {
		t.Fatal(err)
	}
	d := dict.New(blob)

	cfg := DefaultConfig("")
	return OpenWith(cfg, tr, d)
}

func TestSessionTypeZhongAndCommit(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhong") {
		if b := s.Input(k); b != layout.Absorb {
			t.Fatalf("Input(%q) = %v, want Absorb", k, b)
		}
	}
	if !s.IsEntering() {
		t.Fatal("session should be entering after a partial Pinyin sequence")
	}
	if s.Preedit() != "zhong" {
		t.Fatalf("Preedit() = %q, want %q", s.Preedit(), "zhong")
	}

	if b := s.Input('3'); b != layout.Commit {
		t.Fatalf("Input('3') = %v, want Commit", b)
	}
	if s.IsEntering() {
		t.Fatal("session should not be entering right after Commit")
	}
	if got := s.Buffer(); got != "種" {
		t.Fatalf("Buffer() = %q, want %q", got, "種")
	}
}

func TestSessionCandidatesForSingleSyllable(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhong3") {
		s.Input(k)
	}

	cands := s.Candidates()
	if len(cands) != 1 || cands[0].Text != "種" {
		t.Fatalf("Candidates() = %+v, want a single 種 candidate", cands)
	}
}

func TestSessionBackspaceDuringComposition(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhon") {
		s.Input(k)
	}
	s.Backspace()
	if s.Preedit() != "zho" {
		t.Fatalf("Preedit() after Backspace = %q, want %q", s.Preedit(), "zho")
	}
}

func TestSessionBackspaceDropsLastSyllable(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhong3") {
		s.Input(k)
	}
	if got := s.Buffer(); got != "種" {
		t.Fatalf("Buffer() = %q, want %q", got, "種")
	}

	s.Backspace() // no in-progress composition, so this drops the committed syllable
	if got := s.Buffer(); got != "" {
		t.Fatalf("Buffer() after Backspace = %q, want empty", got)
	}
}

func TestSessionClear(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhong3zho") {
		s.Input(k)
	}
	s.Clear()
	if s.IsEntering() || s.Buffer() != "" || s.Preedit() != "" {
		t.Fatalf("Clear() left state behind: entering=%v buffer=%q preedit=%q", s.IsEntering(), s.Buffer(), s.Preedit())
	}
}

func TestSessionTwoSyllablePhraseWins(t *testing.T) {
	e := testEngine(t)
	defer e.Close()

	s := e.NewSession(layout.HanyuPinyin)
	for _, k := range []byte("zhong3guo2") {
		s.Input(k)
	}
	if got := s.Buffer(); got != "種國" {
		t.Fatalf("Buffer() = %q, want %q", got, "種國")
	}
}

func TestOpenFailsOnMissingDataFile(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	if _, err := Open(cfg); !errors.Is(err, ErrMissingDataFile) {
		t.Fatalf("Open on an empty data dir: err = %v, want ErrMissingDataFile", err)
	}
}
