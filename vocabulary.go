package vocabtree

import (
	"math"
	"slices"

	"github.com/hupe1980/vocabtree/descriptor"
	"github.com/hupe1980/vocabtree/scoring"
)

// NodeID indexes the node arena. The root is always RootID.
type NodeID uint32

// WordID indexes the word table. Leaves are numbered densely from 0 in the
// order they were loaded.
type WordID uint32

const (
	// RootID is the id of the root node.
	RootID NodeID = 0
	// NoWord marks a node that is not a leaf.
	NoWord WordID = math.MaxUint32
)

// maxNodes bounds the arena so that every id fits a NodeID and every word id
// stays below NoWord.
const maxNodes = math.MaxUint32 - 1

// Node is one entry of the tree.
type Node[D any] struct {
	ID NodeID
	// Parent is the parent id; the root is its own parent.
	Parent NodeID
	// Children lists child ids in load order.
	Children   []NodeID
	Descriptor D
	Weight     float64
	// WordID is NoWord for internal nodes.
	WordID WordID
}

// IsLeaf reports whether the node is a word.
func (n *Node[D]) IsLeaf() bool {
	return n.WordID != NoWord
}

// IsRoot reports whether the node is the root.
func (n *Node[D]) IsRoot() bool {
	return n.ID == RootID
}

// tree is the storage a decode or build produces. It is swapped into a
// Vocabulary as a whole so a failed load never leaves a partial tree behind.
type tree[D any] struct {
	header Header
	scorer scoring.Scorer
	// nodes is the arena; a node's id is its index.
	nodes []Node[D]
	// words maps word ids to node ids. It never owns nodes.
	words []NodeID
}

// Vocabulary is a k-ary clustering tree whose leaves are visual words.
//
// A Vocabulary is not safe for concurrent use: Decode, Load and Build replace
// the whole tree and must not run concurrently with any other method. Once
// loaded, concurrent read-only access is safe.
type Vocabulary[D any] struct {
	codec descriptor.Codec[D]
	opts  options
	tree[D]
}

// New creates an empty vocabulary whose node descriptors are handled by codec.
func New[D any](codec descriptor.Codec[D], optFns ...Option) *Vocabulary[D] {
	return &Vocabulary[D]{
		codec: codec,
		opts:  newOptions(optFns),
	}
}

// Codec returns the descriptor codec.
func (v *Vocabulary[D]) Codec() descriptor.Codec[D] { return v.codec }

// Header returns the vocabulary parameters.
func (v *Vocabulary[D]) Header() Header { return v.header }

// Scorer returns the scoring strategy selected by the header, or nil if the
// vocabulary is empty.
func (v *Vocabulary[D]) Scorer() scoring.Scorer { return v.scorer }

// Empty reports whether no tree has been loaded or built.
func (v *Vocabulary[D]) Empty() bool { return len(v.nodes) == 0 }

// NumNodes returns the number of nodes, root included.
func (v *Vocabulary[D]) NumNodes() int { return len(v.nodes) }

// NumWords returns the number of words (leaves).
func (v *Vocabulary[D]) NumWords() int { return len(v.words) }

// Node returns the node with the given id.
// The returned node shares its Children slice with the vocabulary and must
// not be modified.
func (v *Vocabulary[D]) Node(id NodeID) (Node[D], bool) {
	if int(id) >= len(v.nodes) {
		return Node[D]{}, false
	}
	return v.nodes[id], true
}

// Word returns the node id of word id.
func (v *Vocabulary[D]) Word(id WordID) (NodeID, bool) {
	if int(id) >= len(v.words) {
		return 0, false
	}
	return v.words[id], true
}

// WordNode returns the leaf node of word id.
func (v *Vocabulary[D]) WordNode(id WordID) (Node[D], bool) {
	nid, ok := v.Word(id)
	if !ok {
		return Node[D]{}, false
	}
	return v.nodes[nid], true
}

// WordWeight returns the weight of word id, or 0 if it does not exist.
func (v *Vocabulary[D]) WordWeight(id WordID) float64 {
	n, ok := v.WordNode(id)
	if !ok {
		return 0
	}
	return n.Weight
}

// Children returns a copy of the child ids of id.
func (v *Vocabulary[D]) Children(id NodeID) []NodeID {
	if int(id) >= len(v.nodes) {
		return nil
	}
	return slices.Clone(v.nodes[id].Children)
}

// Parent returns the parent id of id. The root has no parent.
func (v *Vocabulary[D]) Parent(id NodeID) (NodeID, bool) {
	if id == RootID || int(id) >= len(v.nodes) {
		return 0, false
	}
	return v.nodes[id].Parent, true
}

// Walk calls fn for every node in id order until fn returns false.
// fn may update Weight and Descriptor but must not change ids, parents,
// children or word ids.
func (v *Vocabulary[D]) Walk(fn func(n *Node[D]) bool) {
	for i := range v.nodes {
		if !fn(&v.nodes[i]) {
			return
		}
	}
}

// Reset drops the loaded tree.
func (v *Vocabulary[D]) Reset() {
	v.tree = tree[D]{}
}

func (v *Vocabulary[D]) install(t tree[D]) {
	v.tree = t
}
