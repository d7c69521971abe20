// Package layout maps raw ASCII key codes to Bopomofo phone fields under one
// of the keyboard layouts a phonetic editor can be configured with.
package layout

import "github.com/chewing/zhuyin-core/internal/phone"

// Behavior reports what a keyboard layout did with a key, the Go rendering
// of the source project's KeyBehavior sum type.
type Behavior int

const (
	// Ignore means the key carries no meaning for this layout; the driver
	// should let it pass through untouched.
	Ignore Behavior = iota
	// Absorb means the key was consumed and extended the partial phone.
	Absorb
	// Commit means a tone key completed a committable phone.
	Commit
	// NoWord means the key was meaningful in general but not valid in the
	// current state (e.g. a tone key before any initial, medial or final).
	NoWord
	// KeyError marks an internal inconsistency; distinct from NoWord so a
	// caller can tell "the user did something odd" from "the editor's
	// invariants broke".
	KeyError
)

func (b Behavior) String() string {
	switch b {
	case Ignore:
		return "Ignore"
	case Absorb:
		return "Absorb"
	case Commit:
		return "Commit"
	case NoWord:
		return "NoWord"
	case KeyError:
		return "KeyError"
	default:
		return "Behavior(?)"
	}
}

// ID names one of the supported keyboard layouts.
type ID int

const (
	Default ID = iota
	Hsu
	IBM
	GinYieh
	Et
	Et26
	Dvorak
	DvorakHsu
	DachenCP26
	HanyuPinyin
	THLPinyin
	MPS2Pinyin
	Carpalx
)

func (id ID) String() string {
	switch id {
	case Default:
		return "Default"
	case Hsu:
		return "Hsu"
	case IBM:
		return "IBM"
	case GinYieh:
		return "GinYieh"
	case Et:
		return "Et"
	case Et26:
		return "Et26"
	case Dvorak:
		return "Dvorak"
	case DvorakHsu:
		return "DvorakHsu"
	case DachenCP26:
		return "DachenCP26"
	case HanyuPinyin:
		return "HanyuPinyin"
	case THLPinyin:
		return "THLPinyin"
	case MPS2Pinyin:
		return "MPS2Pinyin"
	case Carpalx:
		return "Carpalx"
	default:
		return "ID(?)"
	}
}

// State is the partial-phone scratch a KeyMap reads and mutates. It plays
// the same role the teacher's engine.Syllable struct plays for Vietnamese:
// the single piece of mutable state threaded through one key at a time.
type State struct {
	Initial, Medial, Final, Tone byte

	// Alternate holds the phone an ambiguous key would have produced under
	// its other reading, for layouts with deferred disambiguation (Hsu,
	// Et26, DachenCP26, DvorakHsu). Zero when there is no pending ambiguity.
	Alternate phone.Phone

	// Latin holds the typed-so-far Latin key sequence for Pinyin layouts.
	// Empty for all other layouts.
	Latin string
}

// IsEmpty reports whether no field has been touched yet.
func (s State) IsEmpty() bool {
	return s.Initial == 0 && s.Medial == 0 && s.Final == 0 && s.Tone == 0 && s.Alternate == 0 && s.Latin == ""
}

// Phone returns the phone.Phone the current fields encode. It never returns
// a field-range error: every field a KeyMap ever writes into State is one it
// read out of its own tables, which are built in range.
func (s State) Phone() phone.Phone {
	p, err := phone.Encode(s.Initial, s.Medial, s.Final, s.Tone)
	if err != nil {
		// A KeyMap wrote an out-of-range field; that is this package's bug,
		// not the caller's, so surface it as the zero phone rather than
		// panicking the editor mid-session.
		return 0
	}
	return p
}

// KeyMap is the pure mapping a keyboard layout exposes: one ASCII key, plus
// the current partial-phone state, in; an updated state and a Behavior out.
type KeyMap interface {
	// Name returns the layout's name, e.g. "Default" or "HanyuPinyin".
	Name() string

	// Input feeds one key into the state machine, mutating state in place.
	Input(key byte, state *State) Behavior
}

// New returns the KeyMap for a given layout ID.
func New(id ID) KeyMap {
	switch id {
	case Hsu:
		return newDeferred(id, hsuTables())
	case Et26:
		return newDeferred(id, et26Tables())
	case DachenCP26:
		return newDeferred(id, dachenCP26Tables())
	case DvorakHsu:
		return newDeferred(id, dvorakHsuTables())
	case HanyuPinyin:
		return newPinyin(id, hanyuSyllables)
	case THLPinyin:
		return newPinyin(id, thlSyllables)
	case MPS2Pinyin:
		return newPinyin(id, mps2Syllables)
	case IBM:
		return newStandard(id, ibmTable)
	case GinYieh:
		return newStandard(id, ginYiehTable)
	case Et:
		return newStandard(id, etTable)
	case Dvorak:
		return newStandard(id, dvorakTable)
	case Carpalx:
		return newStandard(id, carpalxTable)
	default:
		return newStandard(Default, defaultTable)
	}
}
