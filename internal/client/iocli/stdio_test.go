package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fd -1 никогда не терминал
func newTestStdio(input string) (*Stdio, *bytes.Buffer) {
	var out bytes.Buffer
	return newStdio(strings.NewReader(input), &out, -1), &out
}

func TestNewStdio(t *testing.T) {
	assert.NotNil(t, NewStdio())
}

func TestPrintlnAndPrintf(t *testing.T) {
	s, out := newTestStdio("")

	s.Println("hello", "world")
	s.Printf("test %d %s", 1, "abc")
	_, err := s.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc!", out.String())
}

func TestReadInput(t *testing.T) {
	s, out := newTestStdio("first line\n  second  \nlast")

	first, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "first line", first)

	// буфер не теряет остаток ввода между вызовами
	second, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	// последняя строка без перевода строки
	last, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "last", last)

	_, err = s.ReadInput("Prompt: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, strings.Repeat("Prompt: ", 4), out.String())
}

func TestReadPassword_NotTerminal(t *testing.T) {
	s, _ := newTestStdio("s3cret\n")

	pw, err := s.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
}
