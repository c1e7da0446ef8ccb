package vocabtree

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// maxReported caps the number of violations Validate reports per invariant.
const maxReported = 16

// Validate checks the structural invariants of the tree:
//
//   - node ids are dense and match their arena position;
//   - every non-root node has exactly one parent defined before it and
//     appears exactly once in that parent's children;
//   - a node is a word iff it has no children (the root excepted);
//   - word ids are dense and the word table points back at its leaves.
//
// Decoding does not require a complete tree, so a successfully decoded
// vocabulary can still fail validation. All violations found are joined.
func (v *Vocabulary[D]) Validate() error {
	if v.Empty() {
		return ErrEmptyVocabulary
	}

	var errs []error
	report := func(id NodeID, format string, args ...any) {
		if len(errs) < maxReported*4 {
			errs = append(errs, &ValidationError{Node: id, Reason: fmt.Sprintf(format, args...)})
		}
	}

	n := len(v.nodes)
	childless := roaring.New()
	words := roaring.New()
	linked := roaring.New()

	for i := range v.nodes {
		node := &v.nodes[i]
		id := NodeID(i)

		if node.ID != id {
			report(id, "stored id %d does not match position", node.ID)
		}
		if i > 0 && node.Parent >= id {
			report(id, "parent %d is not defined before the node", node.Parent)
		}

		for _, c := range node.Children {
			if c <= id || int(c) >= n {
				report(id, "child %d is out of order or out of range", c)
				continue
			}
			if v.nodes[c].Parent != id {
				report(id, "child %d names parent %d", c, v.nodes[c].Parent)
			}
			if !linked.CheckedAdd(uint32(c)) {
				report(c, "appears in more than one children list")
			}
		}

		if i > 0 && len(node.Children) == 0 {
			childless.Add(uint32(i))
		}
		if node.IsLeaf() {
			words.Add(uint32(i))
			if int(node.WordID) >= len(v.words) || v.words[node.WordID] != id {
				report(id, "word %d is not indexed", node.WordID)
			}
		}
	}

	if got := linked.GetCardinality(); got != uint64(n-1) {
		report(RootID, "%d of %d nodes are linked to a parent", got, n-1)
	}

	for wid, nid := range v.words {
		if int(nid) >= n || v.nodes[nid].WordID != WordID(wid) {
			report(nid, "word table entry %d does not point back", wid)
		}
	}

	if !childless.Equals(words) {
		mismatch := roaring.Xor(childless, words)
		it := mismatch.Iterator()
		for reported := 0; it.HasNext() && reported < maxReported; reported++ {
			id := NodeID(it.Next())
			if words.Contains(uint32(id)) {
				report(id, "word has children")
			} else {
				report(id, "internal node has no children")
			}
		}
	}

	return errors.Join(errs...)
}
