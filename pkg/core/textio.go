package core

import (
	"io"

	"github.com/munge/munge/internal/wordlist"
)

// WriteVariants writes one variant per line and flushes.
func WriteVariants(w io.Writer, variants []string) error {
	return wordlist.WriteWords(w, variants)
}

// ReadWords reads one word per line, useful for ingestion tests.
func ReadWords(r io.Reader) ([]string, error) {
	return wordlist.ReadWords(r)
}
