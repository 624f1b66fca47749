// Package adf models the Atlassian Document Format content tree: a tagged
// recursive node structure with an opaque pass-through for unknown kinds.
// It provides section and extension addressing over the tree, builder
// functions for every node kind, and a one-directional markdown projection
// plus a best-effort markdown-to-tree builder.
package adf
