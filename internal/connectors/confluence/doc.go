// Package confluence implements the remote transport against the
// Confluence Cloud REST API v2: single-page fetch with ADF body,
// cursor-paginated space listings, optimistic-concurrency updates, and
// cached space resolution. Requests are throttled proactively; transient
// failures are surfaced to the caller, never retried here.
package confluence
