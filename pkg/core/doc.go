// Package core provides a small, stable facade over munge's internal engine
// for external integrations. It re-exports a narrow API surface so other
// tools can depend on a stable import path without importing internal
// packages.
//
// Example:
//
//	variants, err := core.MutateAll([]string{"password", "dragon"})
//	if err != nil { /* handle */ }
//	_ = core.WriteVariants(os.Stdout, variants)
package core
