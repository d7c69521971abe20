// Package engine is the session facade: it wires the phonetic editor
// (component C) and the tree/dict/candidate/convert stack (components D-G)
// into the Engine/Session pair SPEC_FULL.md §6 describes as the surface an
// IME shim drives. It is the direct descendant of the teacher's
// CompositionEngine, generalized from "one Vietnamese method + one output
// format" to "one of 13 layouts + the tree/dict-backed conversion core".
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewing/zhuyin-core/internal/candidate"
	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/layout"
	"github.com/chewing/zhuyin-core/internal/tree"
)

// ErrMissingDataFile is returned from Open when the data directory lacks
// the phrase tree or phrase dictionary file.
var ErrMissingDataFile = errors.New("engine: missing data file")

// ErrCorruptDictionary is tree.ErrCorruptDictionary, re-exported so callers
// of Open can errors.Is against it without importing the tree package. The
// dict package's ErrCorruptDictionary is a separate sentinel and does not
// match it.
var ErrCorruptDictionary = tree.ErrCorruptDictionary

// Engine owns the immutable tree and phrase-blob resources for its
// lifetime (SPEC_FULL.md §3 Lifecycle); many Sessions may share one Engine.
type Engine struct {
	cfg  Config
	tr   *tree.Tree
	dict *dict.Dict
}

// Open memory-maps the phrase tree and phrase dictionary files under
// cfg.DataDir. A partially constructed Engine that fails during Open
// releases any region it had already mapped (SPEC_FULL.md §5).
func Open(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	treePath := filepath.Join(cfg.DataDir, PhraseTreeFile)
	dictPath := filepath.Join(cfg.DataDir, PhraseDictFile)
	if _, err := os.Stat(treePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingDataFile, treePath)
	}
	if _, err := os.Stat(dictPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingDataFile, dictPath)
	}

	tr, err := tree.Open(treePath, cfg.VerifyOnOpen)
	if err != nil {
		return nil, err
	}

	d, err := dict.Open(dictPath)
	if err != nil {
		tr.Close()
		return nil, err
	}

	return &Engine{cfg: cfg, tr: tr, dict: d}, nil
}

// OpenWith constructs an Engine directly from an already-loaded tree and
// dictionary, bypassing the data-directory file layout. Used by tests and
// by embedders that load the phrase data some other way (e.g. compiled
// into the binary).
func OpenWith(cfg Config, tr *tree.Tree, d *dict.Dict) *Engine {
	return &Engine{cfg: cfg.withDefaults(), tr: tr, dict: d}
}

// Close releases the mapped tree and dictionary regions.
func (e *Engine) Close() error {
	err1 := e.tr.Close()
	err2 := e.dict.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// NewSession creates a Session bound to this Engine's tree and dictionary,
// composing under the given keyboard layout.
func (e *Engine) NewSession(layoutID layout.ID, sources ...candidate.Source) *Session {
	return newSession(e, layoutID, sources...)
}

// Warning returns a non-fatal integrity complaint recorded while opening the
// phrase tree (see tree.Tree.Warning), or "" if none was recorded.
func (e *Engine) Warning() string {
	return e.tr.Warning()
}
