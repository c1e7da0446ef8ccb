// Package kmeans implements k-means clustering for vocabulary tree training.
//
// The hierarchical builder runs one clustering per internal node: the
// descriptors routed to a node are split into k clusters whose centroids
// become the node's children.
package kmeans
