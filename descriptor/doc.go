// Package descriptor provides the pluggable descriptor formats stored at the
// nodes of a vocabulary tree.
//
// A Codec converts between a descriptor value and a fixed number of text
// tokens (its arity). The tree codec never looks inside a descriptor; it
// only hands exactly Arity() tokens to Parse and writes whatever Append
// produces.
//
// Two codecs are built in:
//
//   - Binary: bit-string descriptors such as ORB or BRIEF, one unsigned
//     decimal token per byte (ORB uses 32 bytes).
//   - Float32: real-valued descriptors such as SURF or SIFT, one float token
//     per component.
package descriptor
