// Package resource governs the memory, worker and IO budgets of vocabulary
// loading and building.
//
//   - Memory: decoders reserve their pre-allocation hint before sizing the
//     node arena. A refused reservation is not an error; the decoder simply
//     grows storage on demand.
//   - Workers: the hierarchical k-means builder clusters independent nodes
//     concurrently, bounded by MaxWorkers.
//   - IO: reads from blob stores can be throttled to a byte rate so that
//     loading a large vocabulary does not starve other traffic.
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
