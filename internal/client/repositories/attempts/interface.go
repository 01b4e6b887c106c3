// Package attempts is the local journal of graded answers. It works offline
// and backs the history and mistakes commands.
package attempts

import (
	"context"
	"time"
)

type Attempt struct {
	ID          int64
	QuizID      int64
	Category    string
	Question    string
	Selected    int
	Correct     int
	IsCorrect   bool
	AIGenerated bool
	// Recorded is true once the server accepted the answer.
	Recorded  bool
	CreatedAt time.Time
}

type CategorySummary struct {
	Category string
	Total    int
	Correct  int
}

// Accuracy is the share of correct answers in percent.
func (s CategorySummary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Total)
}

type Repository interface {
	Add(ctx context.Context, a *Attempt) (int64, error)
	MarkRecorded(ctx context.Context, id int64) error
	Recent(ctx context.Context, limit int) ([]Attempt, error)
	Mistakes(ctx context.Context, limit int) ([]Attempt, error)
	Summary(ctx context.Context) ([]CategorySummary, error)
}
