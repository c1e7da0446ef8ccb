// Package testutil provides testing utilities for vocabtree.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random descriptors, clustered training
// images and complete vocabulary files in text format.
//
// # Random Descriptors
//
//	rng := testutil.NewRNG(seed)
//	orb := rng.BinaryDescriptors(100, 32)     // ORB-like byte strings
//	surf := rng.UniformVectors(100, 64)       // uniform [0, 1)
//
// # Training Data
//
//	images := rng.ClusteredImages(20, 50, 8, 6, 0.05)
//
// # Vocabulary Files
//
//	text := rng.VocabularyText(testutil.VocabularyConfig{K: 3, L: 2, Bytes: 4})
package testutil
