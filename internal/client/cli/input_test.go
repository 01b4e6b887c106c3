package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Again?", &out)
	require.ErrorIs(t, err, ErrNoInput)
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origTerm, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = origTerm
		readPassword = origRead
	})
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("tty gone"))

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("from-pipe\n")), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-pipe", pw)
}

func TestParseOption(t *testing.T) {
	i, err := parseOption("2")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	for _, bad := range []string{"0", "-1", "two", ""} {
		_, err := parseOption(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCount(t *testing.T) {
	n, err := parseCount(nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = parseCount([]string{"5", "7"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = parseCount([]string{"x"}, 0)
	require.Error(t, err)
}
