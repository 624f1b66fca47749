// Package file provides the filesystem implementations of the page cache
// and page index ports.
//
// Pages live under one directory per space key, as a pair of files per
// page: the raw ADF body in <id>.json and a small metadata sidecar in
// <id>.meta.json. All writes are staged to a temp file and renamed into
// place. The pair is the unit of existence: a page with only one half on
// disk is treated as absent, so a crash between the two renames costs a
// refetch rather than a corrupt cache.
//
// The index is a flat JSON array in a single file, rebuilt wholesale from
// the cached metadata sidecars.
package file
