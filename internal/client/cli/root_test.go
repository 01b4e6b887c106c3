package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Build version: N/A")
	assert.Contains(t, out.String(), "Build commit: N/A")
}

func TestRootCmd_WhoAmIWithoutSession(t *testing.T) {
	t.Setenv("DRIVEQUIZ_DATA_DIR", t.TempDir())
	t.Setenv("DRIVEQUIZ_CONFIG", "")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"whoami", "--credential-backend", "memory", "--api", "http://127.0.0.1:1/api"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Not logged in.")
	assert.Contains(t, out.String(), "Token:    none stored")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Setenv("DRIVEQUIZ_DATA_DIR", t.TempDir())
	t.Setenv("DRIVEQUIZ_CONFIG", "")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"whoami", "--credential-backend", "floppy"})

	require.Error(t, cmd.Execute())
}

func TestRootCmd_RunsREPL(t *testing.T) {
	s := newFakeServer(t)
	t.Setenv("DRIVEQUIZ_DATA_DIR", t.TempDir())
	t.Setenv("DRIVEQUIZ_CONFIG", "")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader("quit\n"), &out)
	cmd.SetArgs([]string{"--api", s.srv.URL + "/api", "--credential-backend", "memory"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Welcome to drivequiz")
	assert.Contains(t, out.String(), "Bye!")
}
