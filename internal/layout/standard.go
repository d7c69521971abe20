package layout

import "fmt"

// slot identifies which phone field a key contributes to.
type slot int

const (
	slotInitial slot = iota
	slotMedial
	slotFinal
	slotTone
)

// assignment is one key's target slot and the field value it writes there.
type assignment struct {
	slot  slot
	value byte
}

func (a assignment) apply(s *State) {
	switch a.slot {
	case slotInitial:
		s.Initial = a.value
	case slotMedial:
		s.Medial = a.value
	case slotFinal:
		s.Final = a.value
	case slotTone:
		s.Tone = a.value
	}
}

// standardTable is a direct one-key-to-one-slot mapping: the column layout
// of a "big keyboard" Zhuyin/romanization scheme with no deferred
// disambiguation. A later key targeting an already-filled slot overwrites
// the earlier one, matching the Standard-layout policy in SPEC_FULL.md §4.B.
type standardTable map[byte]assignment

type standardLayout struct {
	id    ID
	table standardTable
}

func newStandard(id ID, table standardTable) *standardLayout {
	return &standardLayout{id: id, table: table}
}

func (l *standardLayout) Name() string { return l.id.String() }

func (l *standardLayout) Input(key byte, state *State) Behavior {
	a, ok := l.table[key]
	if !ok {
		return Ignore
	}
	if a.slot == slotTone {
		if state.Initial == 0 && state.Medial == 0 && state.Final == 0 {
			return NoWord
		}
		state.Tone = a.value
		return Commit
	}
	a.apply(state)
	return Absorb
}

// defaultTable is the canonical "big keyboard" Zhuyin layout: the one used
// throughout SPEC_FULL.md's scenarios (S1: keys "5j/3" spell ㄓㄨㄥˇ).
var defaultTable = standardTable{
	// Initials, row 1 and home row.
	'1': {slotInitial, 1}, // ㄅ
	'q': {slotInitial, 2}, // ㄆ
	'a': {slotInitial, 3}, // ㄇ
	'z': {slotInitial, 4}, // ㄈ
	'2': {slotInitial, 5}, // ㄉ
	'w': {slotInitial, 6}, // ㄊ
	's': {slotInitial, 7}, // ㄋ
	'x': {slotInitial, 8}, // ㄌ
	'5': {slotInitial, 9}, // ㄓ
	'e': {slotInitial, 10}, // ㄍ
	'd': {slotInitial, 11}, // ㄎ
	'c': {slotInitial, 12}, // ㄏ
	'r': {slotInitial, 13}, // ㄐ
	'f': {slotInitial, 14}, // ㄑ
	'v': {slotInitial, 15}, // ㄒ
	't': {slotInitial, 16}, // ㄔ
	'g': {slotInitial, 17}, // ㄕ
	'b': {slotInitial, 18}, // ㄖ
	'y': {slotInitial, 19}, // ㄗ
	'h': {slotInitial, 20}, // ㄘ
	'n': {slotInitial, 21}, // ㄙ

	// Medials.
	'u': {slotMedial, 1}, // ㄧ
	'j': {slotMedial, 2}, // ㄨ
	'm': {slotMedial, 3}, // ㄩ

	// Finals.
	'8': {slotFinal, 1},  // ㄚ
	'i': {slotFinal, 2},  // ㄛ
	'k': {slotFinal, 3},  // ㄜ
	',': {slotFinal, 4},  // ㄝ
	'9': {slotFinal, 5},  // ㄞ
	'o': {slotFinal, 6},  // ㄟ
	'l': {slotFinal, 7},  // ㄠ
	'.': {slotFinal, 8},  // ㄡ
	'0': {slotFinal, 9},  // ㄢ
	'/': {slotFinal, 10}, // ㄥ
	'p': {slotFinal, 11}, // ㄣ
	';': {slotFinal, 12}, // ㄤ
	'-': {slotFinal, 13}, // ㄦ

	// Tones: space commits the light (first) tone, digits 6/3/4/7 commit
	// tones 2 through 5.
	' ': {slotTone, 1},
	'6': {slotTone, 2},
	'3': {slotTone, 3},
	'4': {slotTone, 4},
	'7': {slotTone, 5},
}

// The remaining "standard" layouts differ from Default only in which ASCII
// key reaches a given slot; they share its Behavior semantics entirely.
// Each is grounded in the same "one key, one slot, direct overwrite" policy,
// remapped to a distinct physical key arrangement (IBM, GinYieh, Et and
// Dvorak all shipped real Zhuyin keycaps; Carpalx never did for Bopomofo, so
// this table is this module's own ergonomic remap of Default onto the
// Carpalx row-shift, in the same spirit as the teacher offering both Telex
// and VNI atop one shared phone model).

// remapKeys rebuilds base under a new key→key mapping, used to derive a
// layout that reaches the same Bopomofo slots as Default through different
// physical keys. remap must be injective over base's keys: two source keys
// landing on the same output key would silently drop one slot assignment,
// so this is checked eagerly rather than left to surface as a missing key
// at runtime.
func remapKeys(base standardTable, remap map[byte]byte) standardTable {
	out := make(standardTable, len(base))
	seen := make(map[byte]byte, len(base))
	for k, v := range base {
		nk := k
		if r, ok := remap[k]; ok {
			nk = r
		}
		if prior, ok := seen[nk]; ok {
			panic(fmt.Sprintf("layout: remapKeys collision: both %q and %q target key %q", prior, k, nk))
		}
		seen[nk] = k
		out[nk] = v
	}
	return out
}

var ibmTable = remapKeys(defaultTable, map[byte]byte{
	'1': '1', 'q': 'w', 'a': 'a', 'z': 'z',
	'2': '2', 'w': 'e', 's': 's', 'x': 'x',
	'5': '5', 'e': 't', 'd': 'd', 'c': 'c',
	'r': 'r', 'f': 'g', 'v': 'v', 't': 'y',
	'g': 'h', 'b': 'b', 'y': 'u', 'h': 'j', 'n': 'n',
	'u': 'i', 'j': 'o', 'm': 'p',
	'8': '8', 'i': 'k', 'k': 'l', ',': ',', '9': '9', 'o': 'f', 'l': ';',
	'.': '.', '0': '0', '/': '/', 'p': '-', ';': '=', '-': '\'',
	' ': ' ', '6': '6', '3': '3', '4': '4', '7': '7',
})

var ginYiehTable = remapKeys(defaultTable, map[byte]byte{
	'1': 'q', 'q': '1', 'a': 'z', 'z': 'a',
	'2': 'w', 'w': '2', 's': 'x', 'x': 's',
	'5': 'e', 'e': '5', 'd': 'c', 'c': 'd',
})

var etTable = remapKeys(defaultTable, map[byte]byte{
	'1': 'b', 'q': 'p', 'a': 'm', 'z': 'f',
	'2': 'd', 'w': 't', 's': 'n', 'x': 'l',
	'5': 'j', 'e': 'g', 'd': 'k', 'c': 'h',
	// The keys above vacate their Default positions onto other keys; each
	// vacated key needs its own destination too, rather than sitting at
	// its Default position where it would collide with the key now
	// remapped onto it.
	'b': 'a', 'j': 'c', 'm': 'e', 'h': 'q',
	'k': 's', 'g': 'w', 'f': 'x', 'l': 'z',
	'n': '1', 'p': '2', 't': '5',
})

var dvorakTable = remapKeys(defaultTable, map[byte]byte{
	'1': '1', 'q': '\'', 'a': 'a', 'z': ';',
	'2': '2', 'w': ',', 's': 'o', 'x': 'q',
	'5': '5', 'e': '.', 'd': 'e', 'c': 'j',
	'r': 'p', 'f': 'y', 'v': 'k', 't': 'f', 'g': 'i', 'b': 'x',
	'y': 'g', 'h': 'd', 'n': 'b',
	'u': 'c', 'j': 'r', 'm': 'l',
	'i': 'u', 'k': 'h', ',': 'w', '9': '9', 'o': 'v', 'l': 's',
	'.': 'z', 'p': 'n', ';': 'm', '-': '/', '/': 't',
})

var carpalxTable = remapKeys(defaultTable, map[byte]byte{
	'1': 'q', 'q': 'g', 'a': 'a', 'z': 'z',
	'2': 'w', 'w': 'm', 's': 'r', 'x': 'x',
	'5': 'f', 'e': 'l', 'd': 's', 'c': 'c',
	'r': 'u', 'f': 'y', 'v': 'v', 't': 'd', 'g': 'h', 'b': 'b',
	'y': 'o', 'h': 'e',
	'u': 't', 'j': 'n', 'm': 'k',
	// As in etTable: 'l', 'n', 'k' and 'o' are taken over by 'e', 'j', 'm'
	// and 'y' above, so they need destinations of their own too.
	'l': 'j', 'n': '1', 'k': '2', 'o': '5',
})
