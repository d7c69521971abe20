package engine

import "github.com/chewing/zhuyin-core/internal/layout"

// Config holds the options an Engine is opened with, the same
// plain-struct-plus-DefaultConfig shape the teacher's EngineConfig follows,
// generalized from one fixed Vietnamese method to the data-directory-backed
// phrase engine SPEC_FULL.md §6 describes.
type Config struct {
	// DataDir is the directory holding the phrase tree and phrase
	// dictionary files.
	DataDir string

	// MaxSyllables bounds the in-progress syllable buffer a Session
	// accumulates before a phrase must be committed out of it
	// (SPEC_FULL.md §3). Zero means DefaultConfig's value, 17.
	MaxSyllables int

	// VerifyOnOpen requests the O(n) full leaf-count integrity check
	// instead of the cheap root spot-check (SPEC_FULL.md §4.D).
	VerifyOnOpen bool

	// DefaultLayout names a layout for callers that have no preference of
	// their own. NewSession always takes its layout as an argument and does
	// not read this field.
	DefaultLayout layout.ID
}

// DefaultConfig returns the configuration new callers should start from.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		MaxSyllables:  17,
		VerifyOnOpen:  false,
		DefaultLayout: layout.Default,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxSyllables <= 0 {
		c.MaxSyllables = 17
	}
	return c
}

// PhraseTreeFile and PhraseDictFile name the two files Open expects to find
// under a data directory (SPEC_FULL.md §6). The distilled spec leaves the
// exact filenames unspecified — it authorizes, but does not mandate, a new
// on-disk format — so this module picks explicit names rather than
// inheriting the source project's build-time macros, which the retrieved
// fragment of chewing_internal.h does not define.
const (
	PhraseTreeFile = "phrase.tree"
	PhraseDictFile = "phrase.dict"
)
