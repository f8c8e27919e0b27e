// Package stages implements the mutation stages run by munge. Each stage
// turns one word into a set of variants; the engine runs the stages in order
// and unions their output.
package stages
