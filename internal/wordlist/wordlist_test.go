package wordlist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestReadWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lf", "cat\ndog\n", []string{"cat", "dog"}},
		{"crlf", "cat\r\ndog\r\n", []string{"cat", "dog"}},
		{"no trailing newline", "cat\ndog", []string{"cat", "dog"}},
		{"blank lines kept", "cat\n\ndog\n", []string{"cat", "", "dog"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWords(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile_Mapped(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "words.txt", "password\nletmein\r\ndragon")
	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "letmein", "dragon"}, got)
}

func TestReadFile_Empty(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "empty.txt", "")
	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteWords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWords(&buf, []string{"c4t", "CAT"}))
	assert.Equal(t, "c4t\nCAT\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteWords_FlushError(t *testing.T) {
	err := WriteWords(failingWriter{}, []string{"cat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteFile(p, []string{"a", "b"}))
	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
