// Package topology models the physical warehouse graph: zones with bounding
// rectangles, nodes placed inside zones, and weighted paths between nodes.
//
// The Graph type is an index-based arena over nodes and paths: entries
// reference each other by integer id, never by pointer, so the structure stays
// flat and cheap to rebuild from persistence. The graph is read-mostly;
// administrative edits happen through commands that reload it, and blocking a
// path marks dependent picking routes stale in the same transaction.
package topology
