// Package plan enumerates substitution plans for a table and applies a plan
// to a word. A plan picks exactly one candidate for every class of the
// table; the full plan list is the cartesian product of the classes'
// candidate lists.
package plan
