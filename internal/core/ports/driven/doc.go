// Package driven defines the outbound ports of the core: the remote
// service transport and the local cache and index stores. Adapters under
// internal/adapters/driven and internal/connectors implement them.
package driven
