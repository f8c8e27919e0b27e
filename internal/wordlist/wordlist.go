// Package wordlist reads input words and writes output variants, one per
// line. The path "" or "-" selects standard input or output.
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

const maxLineBytes = 1 << 20

// IsStdio reports whether path selects standard input or output.
func IsStdio(path string) bool { return path == "" || path == "-" }

// ReadWords returns one word per line of r. Line endings are "\n" or "\r\n";
// a final line without a newline is kept, and no empty word is produced for a
// trailing newline.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var words []string
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFile reads the wordlist at path. Non-empty regular files are memory
// mapped; anything else (stdin, pipes, empty files) is streamed.
func ReadFile(path string) ([]string, error) {
	if IsStdio(path) {
		return ReadWords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() || st.Size() == 0 {
		return ReadWords(f)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return ReadWords(f)
	}
	words, err := ReadWords(bytes.NewReader(m))
	if uerr := m.Unmap(); uerr != nil && err == nil {
		err = fmt.Errorf("unmap %s: %w", path, uerr)
	}
	return words, err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Create opens path for writing, truncating it. Standard output is never
// closed by the returned Closer.
func Create(path string) (io.WriteCloser, error) {
	if IsStdio(path) {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// WriteWords writes every word followed by a newline and flushes before
// returning.
func WriteWords(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes words to path (or stdout) and closes it.
func WriteFile(path string, words []string) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	if err := WriteWords(w, words); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
