package layout

// ambiguous is a key whose meaning depends on when it arrives: as the first
// key of a syllable it is read as primary; arriving once any part of the
// syllable is already in place, it is read as alt. SPEC_FULL.md §4.B calls this
// "deferred disambiguation": the editor must keep both readings live
// (State.Alternate) until something — a later key, or a forced tone commit
// — settles which one was meant.
type ambiguous struct {
	primary assignment
	alt     assignment
}

type deferredTable struct {
	ambiguous map[byte]ambiguous
	plain     standardTable
}

type deferredLayout struct {
	id    ID
	table deferredTable
}

func newDeferred(id ID, table deferredTable) *deferredLayout {
	return &deferredLayout{id: id, table: table}
}

func (l *deferredLayout) Name() string { return l.id.String() }

func (l *deferredLayout) Input(key byte, state *State) Behavior {
	if a, ok := l.table.ambiguous[key]; ok {
		return l.inputAmbiguous(a, state)
	}

	if a, ok := l.table.plain[key]; ok {
		if a.slot == slotTone {
			return l.commitTone(a.value, state)
		}
		a.apply(state)
		state.Alternate = 0 // a later key settles any pending ambiguity
		return Absorb
	}

	return Ignore
}

// inputAmbiguous handles a key with two readings. The first time it is seen
// in an empty state it is provisionally read as primary, with Alternate
// recording what alt would have produced. Seeing it again (or seeing it
// after other input already committed to an interpretation) resolves the
// ambiguity in favor of alt, the reading that makes sense once more of the
// syllable is known.
func (l *deferredLayout) inputAmbiguous(a ambiguous, state *State) Behavior {
	if state.IsEmpty() {
		a.primary.apply(state)

		var altState State
		a.alt.apply(&altState)
		state.Alternate = altState.Phone()
		return Absorb
	}

	// Resolve: the pending reading was primary; this key confirms alt
	// instead now that context exists.
	a.alt.apply(state)
	state.Alternate = 0
	return Absorb
}

func (l *deferredLayout) commitTone(tone byte, state *State) Behavior {
	if state.Initial == 0 && state.Medial == 0 && state.Final == 0 {
		return NoWord
	}
	state.Tone = tone
	state.Alternate = 0
	return Commit
}

// hsuTables defines a handful of Hsu-style ambiguous keys (consonant vs.
// final) plus a plain table for the remaining slots and tone keys. Hsu
// assigns every key double duty; this module implements a representative
// subset sufficient to exercise deferred disambiguation faithfully rather
// than reproducing the full historical 37-key table.
func hsuTables() deferredTable {
	return deferredTable{
		ambiguous: map[byte]ambiguous{
			'j': {primary: assignment{slotInitial, 13}, alt: assignment{slotFinal, 9}},  // ㄐ vs ㄢ
			'c': {primary: assignment{slotInitial, 15}, alt: assignment{slotFinal, 12}}, // ㄒ vs ㄤ
			'k': {primary: assignment{slotInitial, 9}, alt: assignment{slotFinal, 7}},   // ㄓ vs ㄠ
		},
		plain: standardTable{
			'd': {slotMedial, 2}, // ㄨ — disambiguates 'j' toward its primary ㄐ reading
			'u': {slotMedial, 1}, // ㄧ
			'm': {slotMedial, 3}, // ㄩ
			'a': {slotFinal, 1},  // ㄚ
			'8': {slotFinal, 5},  // ㄞ
			' ': {slotTone, 1},
			'6': {slotTone, 2},
			'3': {slotTone, 3},
			'4': {slotTone, 4},
			'7': {slotTone, 5},
		},
	}
}

func et26Tables() deferredTable {
	t := hsuTables()
	t.ambiguous['h'] = ambiguous{primary: assignment{slotInitial, 20}, alt: assignment{slotFinal, 11}} // ㄘ vs ㄣ
	return t
}

func dachenCP26Tables() deferredTable {
	t := hsuTables()
	t.ambiguous['e'] = ambiguous{primary: assignment{slotInitial, 10}, alt: assignment{slotFinal, 2}} // ㄍ vs ㄛ
	return t
}

func dvorakHsuTables() deferredTable {
	base := hsuTables()
	remapped := deferredTable{
		ambiguous: make(map[byte]ambiguous, len(base.ambiguous)),
		plain:     make(standardTable, len(base.plain)),
	}
	// Dvorak-Hsu reaches the same phones through the Dvorak physical
	// layout's key positions for the home-row letters Hsu depends on.
	dvorakFor := map[byte]byte{'j': 'c', 'c': 'i', 'k': 't', 'd': 'e', 'u': 'g', 'm': 'l', 'a': 'a'}
	for k, v := range base.ambiguous {
		nk := k
		if r, ok := dvorakFor[k]; ok {
			nk = r
		}
		remapped.ambiguous[nk] = v
	}
	for k, v := range base.plain {
		nk := k
		if r, ok := dvorakFor[k]; ok {
			nk = r
		}
		remapped.plain[nk] = v
	}
	return remapped
}
