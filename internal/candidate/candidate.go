// Package candidate implements the phrase iterator: for a tree node whose
// path spells a syllable sequence, a lazy, ordered stream of phrase
// candidates in descending-frequency order, merged with any external
// (e.g. user-dictionary) sources at the same priority as a regular leaf
// (SPEC_FULL.md §4.F).
package candidate

import (
	"iter"

	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

// Candidate is one phrase result: its text and the frequency it was
// indexed, or supplied by a Source, with.
type Candidate struct {
	Text string
	Freq uint32
}

// Source supplies pseudo-leaf candidates for a syllable span, presented to
// the iterator as if they were ordinary tree leaves. A span need not exist
// in the tree at all — this is how a user dictionary contributes phrases
// the core tree was never built with. The conversion core never learns
// which Source, if any, produced a given Candidate; it sees the same merged
// stream either way.
type Source interface {
	Candidates(span []phone.Phone) []Candidate
}

// Iterator is a single-pass, non-restartable pull iterator over a node's
// leaf run merged with zero or more Sources. It must not be retained beyond
// the owning Tree/Dict's lifetime (SPEC_FULL.md §4.F).
type Iterator struct {
	tr *tree.Tree
	d  *dict.Dict

	treeNode   tree.NodeRef
	treeHas    bool
	treePeek   Candidate
	treePeeked bool

	extra    []Candidate
	extraPos int
}

// New constructs an Iterator over parent's leaf run (when hasNode is true —
// a span the tree has no matching node for passes hasNode=false and relies
// entirely on sources), merging in any Candidates the given Sources supply
// for span.
func New(tr *tree.Tree, d *dict.Dict, parent tree.NodeRef, hasNode bool, span []phone.Phone, sources ...Source) *Iterator {
	it := &Iterator{tr: tr, d: d}
	if hasNode {
		it.treeNode, it.treeHas = tr.FirstPhraseChild(parent)
	}
	for _, s := range sources {
		it.extra = append(it.extra, s.Candidates(span)...)
	}
	// Sources are expected to already be frequency-sorted per source; a
	// stable sort here only needs to interleave multiple sources, not
	// re-derive order within one.
	insertionSortDescending(it.extra)
	return it
}

func insertionSortDescending(c []Candidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].Freq > c[j-1].Freq; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// Next returns the next candidate in descending-frequency order, tie-broken
// toward the tree (whose own leaf order already satisfies the
// ascending-offset tie-break the spec requires), or false once exhausted.
func (it *Iterator) Next() (Candidate, bool) {
	tc, tok := it.peekTree()
	var ec Candidate
	eok := it.extraPos < len(it.extra)
	if eok {
		ec = it.extra[it.extraPos]
	}

	switch {
	case tok && eok:
		if tc.Freq >= ec.Freq {
			it.advanceTree()
			return tc, true
		}
		it.extraPos++
		return ec, true
	case tok:
		it.advanceTree()
		return tc, true
	case eok:
		it.extraPos++
		return ec, true
	default:
		return Candidate{}, false
	}
}

// Seq adapts Next into a Go 1.23 range-over-func iterator, the same
// dual-shape (pull method plus iter.Seq view) the corpus's bart trie
// package offers over its own prefix tree.
func (it *Iterator) Seq() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for {
			c, ok := it.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

func (it *Iterator) peekTree() (Candidate, bool) {
	if it.treePeeked {
		return it.treePeek, it.treeHas
	}
	if !it.treeHas {
		return Candidate{}, false
	}
	n, err := it.tr.Node(it.treeNode)
	if err != nil {
		it.treeHas = false
		return Candidate{}, false
	}
	text, err := it.d.PhraseAt(n.PhraseOffset)
	if err != nil {
		it.treeHas = false
		return Candidate{}, false
	}
	it.treePeek = Candidate{Text: text, Freq: n.PhraseFreq}
	it.treePeeked = true
	return it.treePeek, true
}

func (it *Iterator) advanceTree() {
	next, ok := it.tr.NextSiblingLeaf(it.treeNode)
	it.treeNode = next
	it.treeHas = ok
	it.treePeeked = false
}
