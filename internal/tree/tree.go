// Package tree implements the read-only, mmap-backed phrase tree: a prefix
// trie over Bopomofo syllable sequences whose leaves address phrases in the
// companion dict package. Nodes are addressed by a NodeRef (an array index)
// into a flat record array rather than by pointer, so the whole tree is one
// contiguous mmap'd region with no per-node allocation or pointer chasing.
package tree

import (
	"errors"
	"fmt"

	"github.com/chewing/zhuyin-core/internal/mmapview"
)

// recordSize is the fixed width of one on-disk node record: a 16-bit key
// followed by two 24-bit fields.
const recordSize = 8

// NodeRef is the index of a node in the tree's flat record array. NodeRef 0
// is always the root sentinel.
type NodeRef int32

// Root is the tree's sentinel entry point.
const Root NodeRef = 0

// ErrCorruptDictionary is returned when the tree fails an integrity check on
// open: a malformed record, an empty or mis-ordered child range, or (when
// VerifyOnOpen is requested) a root leaf-count mismatch.
var ErrCorruptDictionary = errors.New("tree: corrupt dictionary")

// Node is a decoded tree record.
type Node struct {
	Key uint16 // 0 marks a leaf

	// Populated when Key != 0 (interior node): the half-open range of child
	// indices, sorted ascending by Key.
	ChildBegin, ChildEnd uint32

	// Populated when Key == 0 (leaf node): the phrase's byte offset and
	// frequency weight.
	PhraseOffset, PhraseFreq uint32
}

func (n Node) IsLeaf() bool { return n.Key == 0 }

// Tree is a read-only view over a phrase-tree file's node array.
type Tree struct {
	view    *mmapview.View
	warning string
}

// Open memory-maps the phrase tree file at path. When verify is true, an
// O(n) full leaf-count check runs eagerly instead of the cheap root
// spot-check.
func Open(path string, verify bool) (*Tree, error) {
	view, err := mmapview.Open(path)
	if err != nil {
		return nil, err
	}
	t := &Tree{view: view}
	if err := t.checkIntegrity(verify); err != nil {
		view.Close()
		return nil, err
	}
	return t, nil
}

// New wraps an already-loaded node array (as produced by Encode) without
// mapping a file; used by tests and by any caller that has built a tree in
// memory.
func New(data []byte, verify bool) (*Tree, error) {
	t := &Tree{view: mmapview.FromBytes(data)}
	if err := t.checkIntegrity(verify); err != nil {
		return nil, err
	}
	return t, nil
}

// Close releases the underlying mapping, if any.
func (t *Tree) Close() error {
	return t.view.Close()
}

// NodeCount returns the number of records in the tree.
func (t *Tree) NodeCount() int {
	return t.view.Len() / recordSize
}

// Warning returns a non-fatal integrity complaint recorded during Open or
// New (currently only a VerifyOnOpen root leaf-count mismatch), or "" if
// none was recorded. Callers that log — only cmd/chewingd does, per
// SPEC_FULL.md §8 — should surface this instead of discarding it.
func (t *Tree) Warning() string {
	return t.warning
}

func (t *Tree) node(ref NodeRef) (Node, error) {
	off := int(ref) * recordSize
	key, err := t.view.Uint16At(off)
	if err != nil {
		return Node{}, fmt.Errorf("%w: reading node %d: %v", ErrCorruptDictionary, ref, err)
	}
	f1, err := t.view.Uint24At(off + 2)
	if err != nil {
		return Node{}, fmt.Errorf("%w: reading node %d: %v", ErrCorruptDictionary, ref, err)
	}
	f2, err := t.view.Uint24At(off + 5)
	if err != nil {
		return Node{}, fmt.Errorf("%w: reading node %d: %v", ErrCorruptDictionary, ref, err)
	}

	n := Node{Key: key}
	if key == 0 {
		n.PhraseOffset, n.PhraseFreq = f1, f2
	} else {
		n.ChildBegin, n.ChildEnd = f1, f2
	}
	return n, nil
}

// Node returns the decoded record at ref.
func (t *Tree) Node(ref NodeRef) (Node, error) {
	return t.node(ref)
}

// LookupChild binary-searches the parent's child range for a child whose Key
// equals key. Cost O(log fanout).
func (t *Tree) LookupChild(parent NodeRef, key uint16) (NodeRef, bool) {
	p, err := t.node(parent)
	if err != nil || p.IsLeaf() {
		return 0, false
	}

	lo, hi := int(p.ChildBegin), int(p.ChildEnd)
	for lo < hi {
		mid := lo + (hi-lo)/2
		n, err := t.node(NodeRef(mid))
		if err != nil {
			return 0, false
		}
		switch {
		case n.Key == key:
			return NodeRef(mid), true
		case n.Key < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// FirstPhraseChild returns the first leaf child (Key == 0) in parent's child
// range, if any. Leaf siblings are contiguous, so every leaf in the run can
// be reached from here via NextSiblingLeaf.
func (t *Tree) FirstPhraseChild(parent NodeRef) (NodeRef, bool) {
	p, err := t.node(parent)
	if err != nil || p.IsLeaf() {
		return 0, false
	}
	// Leaves sort first among siblings (key 0 is the smallest possible key),
	// so the first child in the range is the first leaf if one exists at all.
	if p.ChildBegin >= p.ChildEnd {
		return 0, false
	}
	n, err := t.node(NodeRef(p.ChildBegin))
	if err != nil || !n.IsLeaf() {
		return 0, false
	}
	return NodeRef(p.ChildBegin), true
}

// NextSiblingLeaf advances within a leaf run, returning the next sibling if
// it is also a leaf.
func (t *Tree) NextSiblingLeaf(node NodeRef) (NodeRef, bool) {
	next := node + 1
	if int(next) >= t.NodeCount() {
		return 0, false
	}
	n, err := t.node(next)
	if err != nil || !n.IsLeaf() {
		return 0, false
	}
	return next, true
}

// checkIntegrity runs the cheap root spot-check, or (when verify is true) a
// full leaf count comparison.
func (t *Tree) checkIntegrity(verify bool) error {
	if t.view.Len()%recordSize != 0 {
		return fmt.Errorf("%w: node array length %d is not a multiple of %d", ErrCorruptDictionary, t.view.Len(), recordSize)
	}
	if t.NodeCount() == 0 {
		return fmt.Errorf("%w: empty node array", ErrCorruptDictionary)
	}

	root, err := t.node(Root)
	if err != nil {
		return err
	}
	if !verify {
		return nil
	}

	leaves := t.countLeaves(Root)
	if uint32(leaves) != uint32(root.Key) {
		// The root sentinel's "count" field is not load-bearing for
		// correctness, so a mismatch is non-fatal even under VerifyOnOpen —
		// but it is still worth surfacing to whatever caller logs.
		t.warning = fmt.Sprintf("tree: root leaf count %d does not match %d reachable leaves", root.Key, leaves)
	}
	return nil
}

// Encode serializes a slice of Node records into the on-disk node-array
// format, in order (record i at byte offset i*8). It is the inverse of the
// decoding Tree performs, used by tests and by any future migration tool
// that needs to emit this format.
func Encode(nodes []Node) []byte {
	buf := make([]byte, len(nodes)*recordSize)
	for i, n := range nodes {
		off := i * recordSize
		buf[off] = byte(n.Key >> 8)
		buf[off+1] = byte(n.Key)

		var f1, f2 uint32
		if n.IsLeaf() {
			f1, f2 = n.PhraseOffset, n.PhraseFreq
		} else {
			f1, f2 = n.ChildBegin, n.ChildEnd
		}
		buf[off+2] = byte(f1 >> 16)
		buf[off+3] = byte(f1 >> 8)
		buf[off+4] = byte(f1)
		buf[off+5] = byte(f2 >> 16)
		buf[off+6] = byte(f2 >> 8)
		buf[off+7] = byte(f2)
	}
	return buf
}

func (t *Tree) countLeaves(ref NodeRef) int {
	n, err := t.node(ref)
	if err != nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	count := 0
	for i := n.ChildBegin; i < n.ChildEnd; i++ {
		count += t.countLeaves(NodeRef(i))
	}
	return count
}
