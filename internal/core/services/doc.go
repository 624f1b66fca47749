// Package services contains the core workflows of the CLI: the bulk sync
// engine, the per-page get/put/diff/delete operations, and the local page
// index. Services orchestrate calls to the driven ports and own all
// aggregation; adapters do the I/O.
package services
