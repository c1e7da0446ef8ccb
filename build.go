package vocabtree

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vocabtree/descriptor"
	"github.com/hupe1980/vocabtree/internal/kmeans"
	"github.com/hupe1980/vocabtree/scoring"
)

// Build creates a vocabulary with parameters h from training images, each a
// set of codec.Dim-dimensional descriptors.
//
// The tree is grown level by level with k-means, so parents always precede
// their children and the result can be encoded as is. A cluster stops
// splitting at depth h.Depth or when it holds a single descriptor; a cluster
// with at most k descriptors is split into one child per descriptor.
// Clusterings of the same level run concurrently (see WithWorkers). Leaves
// receive word ids in node id order. With IDF weighting a word weighs
// ln(N/n_i), where N is the number of images and n_i the number of images
// with a descriptor in the word; otherwise every word weighs 1.
func Build(ctx context.Context, h Header, codec descriptor.Float32, images [][][]float32, optFns ...Option) (*Vocabulary[[]float32], error) {
	v := New[[]float32](codec, optFns...)
	start := time.Now()

	t, n, err := buildTree(ctx, h, codec, images, &v.opts)

	v.opts.metrics.RecordBuild(len(t.nodes), len(t.words), time.Since(start), err)
	v.opts.logger.WithHeader(h).LogBuild(ctx, n, len(t.nodes), len(t.words), err)

	if err != nil {
		return nil, err
	}
	v.install(t)
	return v, nil
}

// cluster is a node whose descriptors are about to be split.
type cluster struct {
	node    NodeID
	members []int32
}

// split is the outcome of clustering one node: a centroid and its members
// per non-empty child cluster.
type split struct {
	centroids [][]float32
	members   [][]int32
}

// trainingSet holds all descriptors in one flat buffer.
type trainingSet struct {
	dim     int
	data    []float32
	imageOf []int32
	images  int
}

func (s *trainingSet) vector(i int32) []float32 {
	off := int(i) * s.dim
	return s.data[off : off+s.dim]
}

func buildTree(ctx context.Context, h Header, codec descriptor.Float32, images [][][]float32, o *options) (tree[[]float32], int, error) {
	if err := h.Validate(); err != nil {
		return tree[[]float32]{}, 0, err
	}
	if codec.Dim <= 0 {
		return tree[[]float32]{}, 0, fmt.Errorf("%w: descriptor dimension %d", descriptor.ErrArity, codec.Dim)
	}

	set, err := flatten(codec.Dim, images)
	if err != nil {
		return tree[[]float32]{}, 0, err
	}
	n := len(set.imageOf)
	if n == 0 {
		return tree[[]float32]{}, 0, ErrNoTrainingData
	}

	scorer, err := scoring.New(h.Scoring)
	if err != nil {
		return tree[[]float32]{}, n, err
	}

	t := tree[[]float32]{header: h, scorer: scorer}
	t.nodes = append(t.nodes, Node[[]float32]{ID: RootID, Parent: RootID, WordID: NoWord})

	all := make([]int32, n)
	for i := range all {
		all[i] = int32(i)
	}

	// members of every node, kept for the leaves to compute weights.
	members := map[NodeID][]int32{RootID: all}
	pending := []cluster{{node: RootID, members: all}}

	for level := 1; level <= h.Depth && len(pending) > 0; level++ {
		splits, err := splitLevel(ctx, set, h.BranchingFactor, level, pending, o)
		if err != nil {
			return t, n, err
		}

		var next []cluster
		for i, c := range pending {
			s := splits[i]
			t.nodes[c.node].Children = make([]NodeID, 0, len(s.centroids))
			delete(members, c.node)

			for j, centroid := range s.centroids {
				id := NodeID(len(t.nodes))
				t.nodes = append(t.nodes, Node[[]float32]{
					ID:         id,
					Parent:     c.node,
					Descriptor: centroid,
					WordID:     NoWord,
				})
				t.nodes[c.node].Children = append(t.nodes[c.node].Children, id)
				members[id] = s.members[j]

				if level < h.Depth && len(s.members[j]) > 1 {
					next = append(next, cluster{node: id, members: s.members[j]})
				}
			}
		}
		pending = next
	}

	for i := range t.nodes {
		nd := &t.nodes[i]
		if nd.ID == RootID || len(nd.Children) > 0 {
			continue
		}
		nd.WordID = WordID(len(t.words))
		nd.Weight = wordWeight(h.Weighting, set, members[nd.ID])
		t.words = append(t.words, nd.ID)
	}

	return t, n, nil
}

func flatten(dim int, images [][][]float32) (*trainingSet, error) {
	total := 0
	for _, img := range images {
		total += len(img)
	}
	if total > math.MaxInt32 {
		return nil, fmt.Errorf("too many training descriptors: %d", total)
	}

	set := &trainingSet{
		dim:     dim,
		data:    make([]float32, 0, total*dim),
		imageOf: make([]int32, 0, total),
		images:  len(images),
	}
	for i, img := range images {
		for j, d := range img {
			if len(d) != dim {
				return nil, fmt.Errorf("image %d descriptor %d: %w: got %d values, want %d", i, j, descriptor.ErrArity, len(d), dim)
			}
			set.data = append(set.data, d...)
			set.imageOf = append(set.imageOf, int32(i))
		}
	}
	return set, nil
}

// splitLevel clusters every pending node of one level. The random source of
// each clustering depends only on the seed, the level and the position of
// the node, so results do not depend on scheduling.
func splitLevel(ctx context.Context, set *trainingSet, k, level int, pending []cluster, o *options) ([]split, error) {
	splits := make([]split, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.resource.Workers())

	for i, c := range pending {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(o.seed ^ int64(level)<<32 ^ int64(i)))
			s, err := splitCluster(gctx, set, k, c.members, o.kmeansIterations, rng)
			if err != nil {
				return err
			}
			splits[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return splits, nil
}

func splitCluster(ctx context.Context, set *trainingSet, k int, members []int32, iterations int, rng *rand.Rand) (split, error) {
	if len(members) <= k {
		s := split{
			centroids: make([][]float32, len(members)),
			members:   make([][]int32, len(members)),
		}
		for i, m := range members {
			s.centroids[i] = append([]float32(nil), set.vector(m)...)
			s.members[i] = []int32{m}
		}
		return s, nil
	}

	dim := set.dim
	vectors := make([]float32, 0, len(members)*dim)
	for _, m := range members {
		vectors = append(vectors, set.vector(m)...)
	}

	dist := descriptor.Float32{Dim: dim}.Distance
	res, err := kmeans.Train(ctx, vectors, dim, k, dist, iterations, rng)
	if err != nil {
		return split{}, err
	}

	groups := make([][]int32, k)
	for i, c := range res.Assignments {
		if c >= 0 {
			groups[c] = append(groups[c], members[i])
		}
	}

	var s split
	for c, g := range groups {
		if len(g) == 0 {
			continue
		}
		s.centroids = append(s.centroids, append([]float32(nil), res.Centroids[c*dim:(c+1)*dim]...))
		s.members = append(s.members, g)
	}
	return s, nil
}

func wordWeight(w scoring.Weighting, set *trainingSet, members []int32) float64 {
	if !w.UsesIDF() {
		return 1
	}

	seen := make(map[int32]struct{}, len(members))
	for _, m := range members {
		seen[set.imageOf[m]] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}
	return math.Log(float64(set.images) / float64(len(seen)))
}
