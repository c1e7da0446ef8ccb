// Package vocabtree loads, saves and builds bag-of-words vocabulary trees.
//
// A vocabulary tree is a k-ary clustering tree over image feature
// descriptors. Internal nodes hold cluster centers; leaves are the visual
// words, each with a weight (usually an inverse document frequency). The
// text format is compatible with DBoW2 and ORB-SLAM vocabularies.
//
// # Quick Start
//
//	ctx := context.Background()
//	voc, err := vocabtree.LoadFile(ctx, "ORBvoc.txt", descriptor.ORB())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(voc.Header(), voc.NumWords())
//
// Vocabularies can live in any blobstore.BlobStore; the compression format
// follows the file suffix:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("vocabularies/"))
//	voc, err := vocabtree.Load(ctx, store, "ORBvoc.txt.zst", descriptor.ORB(),
//	    vocabtree.WithIOLimit(64<<20),
//	    vocabtree.WithLogger(vocabtree.NewJSONLogger(slog.LevelInfo)),
//	)
//
// # Text Format
//
// The first line holds four integers "k L scoring weighting". Every further
// line describes one node:
//
//	parent is_leaf d_1 ... d_N weight
//
// Nodes are numbered 1, 2, ... in file order; the root is node 0 and is not
// written. A parent always precedes its children. Leaves are assigned word
// ids 0, 1, ... in the order they appear.
//
// # Decoding Guarantees
//
// Decode either replaces the whole tree or leaves the vocabulary untouched.
// Errors match one of ErrMalformedHeader, ErrInvalidParameters,
// ErrMalformedRecord or ErrDanglingParent with errors.Is and carry the line
// number as a *HeaderError or *RecordError.
//
// # Building
//
// Build trains a float descriptor vocabulary with hierarchical k-means:
//
//	h := vocabtree.Header{BranchingFactor: 10, Depth: 5, Scoring: scoring.L1Norm, Weighting: scoring.TfIdf}
//	voc, err := vocabtree.Build(ctx, h, descriptor.SURF(), images, vocabtree.WithSeed(42))
package vocabtree
