package convert

import (
	"testing"

	"github.com/chewing/zhuyin-core/internal/candidate"
	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

func mustPhone(t *testing.T, initial, medial, final, toneVal byte) phone.Phone {
	t.Helper()
	p, err := phone.Encode(initial, medial, final, toneVal)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// buildFixture indexes a set of (phrase, syllables, freq) tuples into a
// tree + dict pair via tree.Build/dict.Encode.
func buildFixture(t *testing.T, phrases []string, seqs [][]phone.Phone, freqs []uint32) (*tree.Tree, *dict.Dict) {
	t.Helper()
	blob, offsets := dict.Encode(phrases)

	entries := make([]tree.Entry, len(phrases))
	for i := range phrases {
		phones := make([]uint16, len(seqs[i]))
		for j, p := range seqs[i] {
			phones[j] = uint16(p)
		}
		entries[i] = tree.Entry{Phones: phones, Offset: offsets[i], Freq: freqs[i]}
	}

	tr, err := tree.New(tree.Encode(tree.Build(entries)), false)
	if err != nil {
		t.Fatal(err)
	}
	return tr, dict.New(blob)
}

// TestConvertScenarioS5 reproduces SPEC_FULL.md §10 S5: a two-syllable
// phrase at a decisive frequency advantage beats two singletons.
func TestConvertScenarioS5(t *testing.T) {
	tai := mustPhone(t, 6, 0, 5, 2)  // ㄊㄞˊ
	wan := mustPhone(t, 0, 2, 9, 1)  // ㄨㄢ

	tr, d := buildFixture(t,
		[]string{"台", "灣", "台灣"},
		[][]phone.Phone{{tai}, {wan}, {tai, wan}},
		[]uint32{10, 10, 1000},
	)

	result := Convert(tr, d, []phone.Phone{tai, wan})
	if len(result) != 1 || result[0].Text != "台灣" {
		t.Fatalf("Convert = %+v, want single phrase 台灣", result)
	}
	if result[0].Start != 0 || result[0].End != 2 {
		t.Fatalf("span = [%d,%d), want [0,2)", result[0].Start, result[0].End)
	}
}

// TestConvertScenarioS6 reproduces S6: a three-syllable phrase beats three
// singletons at equal per-syllable frequency, via the length_bonus
// tie-break (Testable Property 6).
func TestConvertScenarioS6(t *testing.T) {
	bu := mustPhone(t, 1, 2, 0, 4)  // ㄅㄨˋ
	zhi := mustPhone(t, 9, 0, 0, 1) // ㄓ
	dao := mustPhone(t, 5, 0, 7, 4) // ㄉㄠˋ

	tr, d := buildFixture(t,
		[]string{"不", "知", "道", "不知道"},
		[][]phone.Phone{{bu}, {zhi}, {dao}, {bu, zhi, dao}},
		[]uint32{10, 10, 10, 1000},
	)

	result := Convert(tr, d, []phone.Phone{bu, zhi, dao})
	if len(result) != 1 || result[0].Text != "不知道" {
		t.Fatalf("Convert = %+v, want single phrase 不知道", result)
	}
}

// TestConvertTotality asserts Testable Property 5: every syllable sequence,
// including one with no indexed phrase at all, produces a segmentation
// covering every position via the synthetic singleton fallback.
func TestConvertTotality(t *testing.T) {
	unknown := mustPhone(t, 2, 0, 0, 1) // not present in the fixture tree at all
	tai := mustPhone(t, 6, 0, 5, 2)

	tr, d := buildFixture(t, []string{"台"}, [][]phone.Phone{{tai}}, []uint32{10})

	result := Convert(tr, d, []phone.Phone{unknown, unknown, tai})
	if len(result) == 0 {
		t.Fatal("Convert should never return an empty segmentation for nonempty input")
	}
	covered := 0
	for _, seg := range result {
		if seg.Start != covered {
			t.Fatalf("segmentation has a gap: expected Start %d, got %d in %+v", covered, seg.Start, result)
		}
		covered = seg.End
	}
	if covered != 3 {
		t.Fatalf("segmentation covers up to %d, want 3", covered)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	tr, d := buildFixture(t, []string{"台"}, [][]phone.Phone{{mustPhone(t, 6, 0, 5, 2)}}, []uint32{10})
	if result := Convert(tr, d, nil); result != nil {
		t.Fatalf("Convert(nil) = %+v, want nil", result)
	}
}

// TestConvertMergesSource exercises the candidate.Source merge point: a
// user-dictionary phrase outranking the tree's own candidate at the same
// span should win the segmentation.
func TestConvertMergesSource(t *testing.T) {
	tai := mustPhone(t, 6, 0, 5, 2)
	wan := mustPhone(t, 0, 2, 9, 1)

	tr, d := buildFixture(t,
		[]string{"台", "灣"},
		[][]phone.Phone{{tai}, {wan}},
		[]uint32{10, 10},
	)

	src := userDictStub{span: []phone.Phone{tai, wan}, candidate: candidate.Candidate{Text: "台灣", Freq: 5000}}
	result := Convert(tr, d, []phone.Phone{tai, wan}, src)
	if len(result) != 1 || result[0].Text != "台灣" {
		t.Fatalf("Convert with source = %+v, want single phrase 台灣 from the source", result)
	}
}

type userDictStub struct {
	span      []phone.Phone
	candidate candidate.Candidate
}

func (u userDictStub) Candidates(span []phone.Phone) []candidate.Candidate {
	if len(span) != len(u.span) {
		return nil
	}
	for i := range span {
		if span[i] != u.span[i] {
			return nil
		}
	}
	return []candidate.Candidate{u.candidate}
}
