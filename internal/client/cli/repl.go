package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/drivequiz/internal/client/client"
	"github.com/dmitrijs2005/drivequiz/internal/client/guard"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

// command is one REPL verb. A non-empty view binds it to a guarded view:
// the command only runs when the guard lets the user in.
type command struct {
	name  string
	usage string
	help  string
	view  string
	run   func(a *App, ctx context.Context, args []string) error
}

var errUsage = errors.New("usage")

var commands = []command{
	{name: "register", help: "create an account and log in", run: (*App).Register},
	{name: "login", usage: "[email]", help: "log in", run: (*App).Login},
	{name: "logout", help: "log out and forget the stored token", run: (*App).Logout},
	{name: "whoami", help: "show the logged in user and token", run: (*App).WhoAmI},
	{name: "go", usage: "<location>", help: "go to /, /quiz, /analysis, /wrong-answers, /profile, /login or /register", run: (*App).Go},

	{name: "stage", usage: "<video file>", help: "stage a driving video", view: guard.ViewQuiz, run: (*App).Stage},
	{name: "category", usage: "[name]", help: "show or choose the quiz category", view: guard.ViewQuiz, run: (*App).Category},
	{name: "generate", help: "upload the staged video and generate a quiz (runs in background)", view: guard.ViewQuiz, run: (*App).Generate},
	{name: "pick", usage: "[category]", help: "start a pre-authored quiz", view: guard.ViewQuiz, run: (*App).Pick},
	{name: "answer", usage: "<n>", help: "select option n", view: guard.ViewQuiz, run: (*App).Answer},
	{name: "submit", help: "grade and record the selected answer", view: guard.ViewQuiz, run: (*App).Submit},
	{name: "record", help: "retry recording a graded answer", view: guard.ViewQuiz, run: (*App).Record},
	{name: "cancel", help: "cancel the running generation", view: guard.ViewQuiz, run: (*App).Cancel},
	{name: "show", help: "show the current quiz", view: guard.ViewQuiz, run: (*App).Show},
	{name: "reset", help: "discard video, quiz and answer", view: guard.ViewQuiz, run: (*App).Reset},
	{name: "quizzes", usage: "[skip] [limit]", help: "list quizzes stored on the server", view: guard.ViewQuiz, run: (*App).Quizzes},

	{name: "stats", help: "show the progress dashboard", view: guard.ViewAnalysis, run: (*App).Stats},
	{name: "progress", help: "show accuracy and level", view: guard.ViewAnalysis, run: (*App).Progress},
	{name: "wrong", help: "list wrong answers", view: guard.ViewWrongAnswers, run: (*App).Wrong},
	{name: "profile", usage: "[email=<e>] [username=<u>]", help: "show or update the profile", view: guard.ViewProfile, run: (*App).Profile},

	{name: "history", usage: "[n]", help: "recent answers on this device (offline)", run: (*App).History},
	{name: "mistakes", usage: "[n]", help: "recent wrong answers on this device (offline)", run: (*App).Mistakes},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	exec(ctx context.Context, name string, args []string) bool
	helpText() string
	output() io.Writer
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// hands it to a. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	out := a.output()
	for {
		fmt.Fprintf(out, "drivequiz %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(out, a.helpText())
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			if !a.exec(ctx, cmd, args) {
				fmt.Fprintln(out, "Unknown command:", cmd)
			}
		}
	}
}

func (a *App) output() io.Writer {
	return a.out
}

// exec runs one command through the guard. It reports false for unknown
// commands.
func (a *App) exec(ctx context.Context, name string, args []string) bool {
	c, ok := findCommand(name)
	if !ok {
		return false
	}

	a.consumeExpiredNotice()
	if c.view != "" && !a.navigate(c.view) {
		fmt.Fprintln(a.out, "Please log in first.")
		return true
	}

	if err := c.run(a, ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(a.out, "Usage: %s %s\n", c.name, c.usage)
			return true
		}
		a.printErr(err)
	}
	return true
}

func (a *App) printErr(err error) {
	if errors.Is(err, ErrNoInput) {
		return
	}
	a.log.Debug(context.Background(), "command failed", "err", err)

	// the redirect to /login has already been announced
	if errors.Is(err, client.ErrUnauthorized) && a.consumeExpiredNotice() {
		return
	}
	fmt.Fprintln(a.out, "Error:", userMessage(err))
}

// userMessage is the text shown for err: the Failure message when there is
// one, otherwise a short description of the API error.
func userMessage(err error) string {
	var f *common.Failure
	switch {
	case errors.As(err, &f):
		return f.Message
	case errors.Is(err, client.ErrUnavailable):
		return "cannot reach server"
	case errors.Is(err, client.ErrMalformedResponse):
		return "unexpected response from server"
	}
	if d := client.DetailOf(err); d != "" {
		return d
	}
	return err.Error()
}

// helpText lists what can be run from the current location. Commands of
// protected views are shown only to a logged in user.
func (a *App) helpText() string {
	authed := a.session.IsAuthenticated()

	var lines []string
	for _, c := range commands {
		if c.view != "" && !authed {
			continue
		}
		if authed && (c.name == "register" || c.name == "login") {
			continue
		}
		name := c.name
		if c.usage != "" {
			name += " " + c.usage
		}
		lines = append(lines, fmt.Sprintf("  %-32s %s", name, c.help))
	}
	lines = append(lines, fmt.Sprintf("  %-32s %s", "exit | quit", "leave the program"))
	return "Available commands:\n" + strings.Join(lines, "\n")
}
