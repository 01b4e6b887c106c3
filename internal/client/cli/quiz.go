package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/drivequiz/internal/client/catalog"
	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/client/quiz"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

func (a *App) Stage(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	// paths with spaces arrive split
	m, err := a.engine.StageMedia(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Staged %s (%s, %s).\n", m.Name, m.ContentType, quiz.FormatSize(m.Size))
	return nil
}

func (a *App) Category(_ context.Context, args []string) error {
	if len(args) == 0 {
		current := a.engine.Snapshot().Category
		for _, c := range catalog.Categories {
			mark := " "
			if c.Label == current {
				mark = "*"
			}
			fmt.Fprintf(a.out, " %s %-12s %s\n", mark, c.Alias, c.Label)
		}
		return nil
	}
	label, err := a.engine.SetCategory(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category set to %s.\n", label)
	return nil
}

// Generate starts the upload in the background so that "cancel" can stop
// it. The result is printed when it arrives.
func (a *App) Generate(ctx context.Context, _ []string) error {
	st := a.engine.State()
	if st.Busy() {
		return quiz.ErrBusy
	}
	if a.engine.Snapshot().Media == nil {
		return quiz.ErrNoMedia
	}

	fmt.Fprintln(a.out, "Generating quiz, this may take a while ('cancel' to stop)...")
	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		v, err := a.engine.Generate(ctx)
		if err != nil {
			a.printErr(err)
			return
		}
		fmt.Fprintln(a.out)
		a.printQuiz(v, nil)
	}()
	return nil
}

func (a *App) Pick(_ context.Context, args []string) error {
	v, err := a.engine.Pick(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printQuiz(v, nil)
	return nil
}

func (a *App) Answer(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	i, err := parseOption(args[0])
	if err != nil {
		return common.NewFailure(common.ErrPreconditionFailed, err.Error(), nil)
	}
	if err := a.engine.Select(i); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Selected option %d.\n", i+1)
	return nil
}

func (a *App) Submit(ctx context.Context, _ []string) error {
	res, err := a.engine.Submit(ctx)
	if err != nil {
		return err
	}
	a.printResult(res.IsCorrect, res.CorrectAnswer, res.Explanation)
	if res.RecordErr != nil {
		fmt.Fprintf(a.out, "Warning: the answer was not recorded (%s). Type 'record' to retry.\n", common.Message(res.RecordErr))
	}
	return nil
}

func (a *App) Record(ctx context.Context, _ []string) error {
	if err := a.engine.RetryRecord(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Answer recorded.")
	return nil
}

func (a *App) Cancel(_ context.Context, _ []string) error {
	if !a.engine.Cancel() {
		fmt.Fprintln(a.out, "Nothing to cancel.")
		return nil
	}
	a.bg.Wait()
	fmt.Fprintln(a.out, "Cancelled.")
	return nil
}

func (a *App) Show(_ context.Context, _ []string) error {
	s := a.engine.Snapshot()

	fmt.Fprintf(a.out, "State:    %s\n", s.State)
	fmt.Fprintf(a.out, "Category: %s\n", s.Category)
	if s.Media != nil {
		fmt.Fprintf(a.out, "Video:    %s (%s)\n", s.Media.Name, quiz.FormatSize(s.Media.Size))
	}
	if s.LastErr != nil {
		fmt.Fprintf(a.out, "Last error: %s\n", common.Message(s.LastErr))
	}
	if s.Quiz == nil {
		return nil
	}
	a.printQuiz(*s.Quiz, s.Selected)
	if s.IsCorrect != nil {
		a.printResult(*s.IsCorrect, *s.CorrectAnswer, s.Explanation)
	}
	if s.RecordErr != nil {
		fmt.Fprintln(a.out, "Not recorded yet, type 'record' to retry.")
	}
	return nil
}

func (a *App) Reset(_ context.Context, _ []string) error {
	if err := a.engine.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Quiz reset.")
	return nil
}

func (a *App) Quizzes(ctx context.Context, args []string) error {
	skip, err := parseCount(args, 0)
	if err != nil {
		return errUsage
	}
	limit, err := parseCount(args, 1)
	if err != nil {
		return errUsage
	}
	qs, err := a.bank.List(ctx, skip, limit)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		fmt.Fprintln(a.out, "No quizzes.")
		return nil
	}
	for _, q := range qs {
		src := ""
		if q.AIGenerated {
			src = " (AI)"
		}
		fmt.Fprintf(a.out, "#%-5d %-8s%s %s\n", q.ID, shortCategory(q.Category), src, q.Question)
	}
	return nil
}

func (a *App) printQuiz(v models.QuizView, selected *int) {
	fmt.Fprintf(a.out, "[%s] %s\n", v.Category, v.Question)
	for i, o := range v.Options {
		mark := " "
		if selected != nil && *selected == i {
			mark = ">"
		}
		fmt.Fprintf(a.out, " %s %d) %s\n", mark, i+1, o)
	}
}

func (a *App) printResult(correct bool, answer int, explanation string) {
	if correct {
		fmt.Fprintln(a.out, "✅ Correct!")
	} else {
		fmt.Fprintf(a.out, "❌ Wrong. The correct answer is %s.\n", strconv.Itoa(answer+1))
	}
	if explanation != "" {
		fmt.Fprintln(a.out, "Explanation:", explanation)
	}
}

// shortCategory shows the alias of a known category.
func shortCategory(label string) string {
	for _, c := range catalog.Categories {
		if c.Label == label {
			return c.Alias
		}
	}
	return label
}
