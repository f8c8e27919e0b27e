// Package table holds the character substitution rules used by munge and
// groups them into character classes: one class per source character, with
// the identity candidate first followed by its replacements in registration
// order.
package table
