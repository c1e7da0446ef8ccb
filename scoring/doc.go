// Package scoring defines the scoring and weighting strategies a vocabulary
// tree is persisted with.
//
// The numeric identifiers of Type and Weighting are part of the vocabulary
// text format (they appear in the header line), so their values must never
// be reordered. Header validation asks Type.Valid and Weighting.Valid instead
// of hard-coding the ranges, which keeps the bounds in one place when a new
// strategy is added.
//
// A Scorer compares two bag-of-words vectors:
//
//	s, _ := scoring.New(scoring.L1Norm)
//	a.Normalize(scoring.NormL1)
//	b.Normalize(scoring.NormL1)
//	similarity := s.Score(a, b) // 1 means identical, 0 means disjoint
package scoring
