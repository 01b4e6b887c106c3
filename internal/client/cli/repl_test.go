package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	known map[string]bool
	calls []string
	out   bytes.Buffer
}

func (f *fakeExec) exec(_ context.Context, name string, args []string) bool {
	if !f.known[name] {
		return false
	}
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return true
}

func (f *fakeExec) helpText() string  { return "HELP" }
func (f *fakeExec) output() io.Writer { return &f.out }

func TestRunREPL_DispatchesUntilExit(t *testing.T) {
	f := &fakeExec{known: map[string]bool{"login": true, "pick": true, "answer": true}}
	in := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"",
		"login kim@example.com",
		"pick   highway",
		"foobar",
		"answer 2",
		"exit",
		"pick signs",
	}, "\n")))

	runREPL(context.Background(), f, func() string { return "/quiz" }, in)

	assert.Equal(t, []string{"login kim@example.com", "pick highway", "answer 2"}, f.calls)
	out := f.out.String()
	assert.Contains(t, out, "drivequiz /quiz> ")
	assert.Contains(t, out, "HELP")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	f := &fakeExec{known: map[string]bool{"show": true}}
	in := bufio.NewReader(strings.NewReader("show"))

	runREPL(context.Background(), f, func() string { return "" }, in)

	assert.Equal(t, []string{"show"}, f.calls)
	assert.NotContains(t, f.out.String(), "Bye!")
}

func TestCommandsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands {
		assert.False(t, seen[c.name], c.name)
		seen[c.name] = true
		assert.NotNil(t, c.run, c.name)
	}
	for _, name := range []string{"register", "login", "logout", "whoami", "go", "stage", "category",
		"generate", "pick", "answer", "submit", "record", "cancel", "show", "reset", "quizzes",
		"stats", "wrong", "progress", "profile", "history", "mistakes"} {
		assert.True(t, seen[name], name)
	}
}
