// Package engine contains the core mutation logic for munge. It builds the
// substitution table, runs the mutation stages over every word of a batch,
// and returns the deduplicated variant set. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
