// Package munge provides the command-line interface for the munge tool.
// It configures subcommands (run, rules, stages, config, version), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/munge/munge/cmd/munge"
//	func main() { munge.Execute() }
package munge
