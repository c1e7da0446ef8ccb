package vocabtree

// Stats summarizes the shape of a vocabulary tree.
type Stats struct {
	Nodes         int
	Words         int
	InternalNodes int
	// MaxDepth is the deepest level reached; the root is level 0.
	MaxDepth int
	// MaxFanout is the largest number of children of any node.
	MaxFanout int
	// LevelNodes counts nodes per level, root level first.
	LevelNodes []int
	// FullNodes is the node count of a full tree with the header's k and L.
	FullNodes int64
}

// Fill returns how much of a full k-ary tree of the header's shape is
// populated, in [0, 1] for trees no larger than the header implies.
func (s Stats) Fill() float64 {
	if s.FullNodes == 0 {
		return 0
	}
	return float64(s.Nodes) / float64(s.FullNodes)
}

// Stats walks the tree and returns its shape.
func (v *Vocabulary[D]) Stats() Stats {
	s := Stats{
		Nodes:     len(v.nodes),
		Words:     len(v.words),
		FullNodes: v.header.ExpectedNodes(),
	}
	if v.Empty() {
		return s
	}

	// Parents precede children, so one forward pass fixes every level.
	levels := make([]int, len(v.nodes))
	for i := range v.nodes {
		node := &v.nodes[i]
		if i > 0 {
			levels[i] = levels[node.Parent] + 1
		}
		if levels[i] >= len(s.LevelNodes) {
			s.LevelNodes = append(s.LevelNodes, 0)
		}
		s.LevelNodes[levels[i]]++
		s.MaxDepth = max(s.MaxDepth, levels[i])
		s.MaxFanout = max(s.MaxFanout, len(node.Children))
		if !node.IsLeaf() {
			s.InternalNodes++
		}
	}
	return s
}
