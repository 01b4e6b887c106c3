package quiz

import "github.com/dmitrijs2005/drivequiz/internal/client/models"

// Snapshot is a read-only copy of the session. CorrectAnswer, Explanation
// and IsCorrect are only filled once the attempt is Graded.
type Snapshot struct {
	State    State
	Category string
	Media    *models.Media
	Quiz     *models.QuizView
	Selected *int

	IsCorrect     *bool
	CorrectAnswer *int
	Explanation   string
	RecordErr     error

	// LastErr is the failure of the last generation, if any.
	LastErr error
}

func (e *Engine) Snapshot() Snapshot {
	e.lock()
	defer e.unlock()

	s := Snapshot{
		State:     e.state,
		Category:  e.category,
		RecordErr: e.recordErr,
		LastErr:   e.lastErr,
	}
	if e.media != nil {
		m := *e.media
		s.Media = &m
	}
	if e.quiz != nil {
		v := e.quiz.View()
		s.Quiz = &v
	}
	if e.selected != nil {
		sel := *e.selected
		s.Selected = &sel
	}
	if e.state == Graded && e.quiz != nil && e.isCorrect != nil {
		ok := *e.isCorrect
		idx := e.quiz.CorrectAnswer
		s.IsCorrect = &ok
		s.CorrectAnswer = &idx
		s.Explanation = e.quiz.Explanation
	}
	return s
}
