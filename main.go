// Command munge expands a wordlist into leet-speak and capitalization
// variants.
//
// Usage:
//
//	munge -w words.txt -o out.txt -l 2
//	cat words.txt | munge --sort
package main

import "github.com/munge/munge/cmd/munge"

func main() { munge.Execute() }
