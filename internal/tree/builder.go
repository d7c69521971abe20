package tree

import "sort"

// Entry is one (syllable-sequence, phrase, frequency) tuple consumed by
// Build. Offset must already address a phrase in the companion dictionary
// blob (see dict.Encode).
type Entry struct {
	Phones []uint16
	Offset uint32
	Freq   uint32
}

// trieNode is Build's scratch representation before BFS-flattening into the
// contiguous node array the on-disk format requires.
type trieNode struct {
	children map[uint16]*trieNode
	leaves   []Entry
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[uint16]*trieNode)}
}

// Build constructs a node array from entries, satisfying every on-disk
// invariant Tree relies on: children sorted strictly ascending by key, leaf
// siblings ordered by descending freq then ascending offset, root key set
// to the total leaf count. It is used by tests and is the shape a migration
// tool producing this format would also build.
func Build(entries []Entry) []Node {
	root := newTrieNode()
	for _, e := range entries {
		cur := root
		for _, p := range e.Phones {
			child, ok := cur.children[p]
			if !ok {
				child = newTrieNode()
				cur.children[p] = child
			}
			cur = child
		}
		cur.leaves = append(cur.leaves, e)
	}

	out := []Node{{}} // index 0 reserved for the root

	type queued struct {
		idx  int
		node *trieNode
	}
	queue := []queued{{0, root}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		sort.Slice(item.node.leaves, func(i, j int) bool {
			li, lj := item.node.leaves[i], item.node.leaves[j]
			if li.Freq != lj.Freq {
				return li.Freq > lj.Freq
			}
			return li.Offset < lj.Offset
		})

		keys := make([]uint16, 0, len(item.node.children))
		for k := range item.node.children {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		begin := len(out)
		for _, leaf := range item.node.leaves {
			out = append(out, Node{Key: 0, PhraseOffset: leaf.Offset, PhraseFreq: leaf.Freq})
		}
		for _, k := range keys {
			childIdx := len(out)
			out = append(out, Node{Key: k})
			queue = append(queue, queued{childIdx, item.node.children[k]})
		}
		end := len(out)

		out[item.idx].ChildBegin = uint32(begin)
		out[item.idx].ChildEnd = uint32(end)
	}

	out[0].Key = uint16(countLeaves(root))
	return out
}

func countLeaves(n *trieNode) int {
	count := len(n.leaves)
	for _, c := range n.children {
		count += countLeaves(c)
	}
	return count
}
