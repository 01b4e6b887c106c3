package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/attempts"
)

func (a *App) Stats(ctx context.Context, _ []string) error {
	d, err := a.analysis.Dashboard(ctx)
	if err != nil {
		return err
	}
	s := d.Stats
	fmt.Fprintf(a.out, "Quizzes:  %d (%d correct)\n", s.TotalQuizzes, s.CorrectAnswers)
	fmt.Fprintf(a.out, "Streak:   %d\n", s.Streak)
	fmt.Fprintf(a.out, "Points:   %s\n", humanize.Comma(int64(s.Points)))
	fmt.Fprintf(a.out, "Level:    %s\n", s.Level)
	a.printProgress(d.Progress)
	fmt.Fprintf(a.out, "Wrong answers to review: %d\n", countUnreviewed(d.WrongAnswers))
	return nil
}

func (a *App) Progress(ctx context.Context, _ []string) error {
	p, err := a.analysis.Progress(ctx)
	if err != nil {
		return err
	}
	a.printProgress(*p)
	return nil
}

func (a *App) printProgress(p models.Progress) {
	fmt.Fprintf(a.out, "Accuracy: %.1f%% (%d/%d)\n", p.Accuracy, p.CorrectAnswers, p.TotalQuizzes)
}

func (a *App) Wrong(ctx context.Context, _ []string) error {
	ws, err := a.analysis.WrongAnswers(ctx)
	if err != nil {
		return err
	}
	if len(ws) == 0 {
		fmt.Fprintln(a.out, "No wrong answers.")
		return nil
	}
	for _, w := range ws {
		mark := " "
		if w.IsReviewed {
			mark = "✓"
		}
		fmt.Fprintf(a.out, "%s quiz #%d, answered %s, %s\n", mark, w.QuizID, w.UserAnswer, humanize.Time(w.CreatedAt.Time))
	}
	return nil
}

func countUnreviewed(ws []models.WrongAnswer) int {
	n := 0
	for _, w := range ws {
		if !w.IsReviewed {
			n++
		}
	}
	return n
}

// Profile shows the profile, or updates it from key=value arguments.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		u, err := a.analysis.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
		fmt.Fprintf(a.out, "Username: %s\n", u.Username)
		fmt.Fprintf(a.out, "Active:   %t\n", u.IsActive)
		return nil
	}

	var in models.ProfileUpdate
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || v == "" {
			return errUsage
		}
		switch k {
		case "email":
			in.Email = v
		case "username":
			in.Username = v
		default:
			return errUsage
		}
	}
	u, err := a.analysis.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", u.Username, u.Email)
	return nil
}

func (a *App) History(ctx context.Context, args []string) error {
	n, err := parseCount(args, 0)
	if err != nil {
		return errUsage
	}
	list, err := a.history.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No answers yet.")
		return nil
	}
	a.printAttempts(list)

	sum, err := a.history.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "By category:")
	for _, s := range sum {
		fmt.Fprintf(a.out, "  %-12s %3d answered, %5.1f%% correct\n", shortCategory(s.Category), s.Total, s.Accuracy())
	}
	return nil
}

func (a *App) Mistakes(ctx context.Context, args []string) error {
	n, err := parseCount(args, 0)
	if err != nil {
		return errUsage
	}
	list, err := a.history.Mistakes(ctx, n)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No mistakes recorded.")
		return nil
	}
	a.printAttempts(list)
	return nil
}

func (a *App) printAttempts(list []attempts.Attempt) {
	for _, at := range list {
		mark := "✅"
		if !at.IsCorrect {
			mark = "❌"
		}
		pending := ""
		if !at.Recorded {
			pending = " (not recorded)"
		}
		fmt.Fprintf(a.out, "%s %s [%s] %s: chose %d, answer %d%s\n",
			mark, humanize.Time(at.CreatedAt), shortCategory(at.Category), at.Question, at.Selected+1, at.Correct+1, pending)
	}
}
