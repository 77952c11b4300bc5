package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  db password \n")), "Enter name", &out)
	require.NoError(t, err)
	assert.Equal(t, "db password", got)
	assert.Equal(t, "Enter name\n> ", out.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "p", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "p", io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("line one\r\nline two\n\nignored\n")), "Enter", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)

	got, err = GetMultiline(bufio.NewReader(strings.NewReader("no newline")), "Enter", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSecret(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("tok"), nil }
	var out bytes.Buffer
	got, err := GetSecret("Bearer token", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), got)
	assert.Equal(t, "Bearer token: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetSecret("Bearer token", io.Discard)
	assert.ErrorContains(t, err, "not a terminal")
}
