// Package domain holds the core types of the conflu CLI: pages, cache
// metadata, index rows, and the sentinel errors shared across services.
package domain
