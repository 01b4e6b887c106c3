package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

type validator interface {
	validate() error
}

type userResponse struct {
	models.User
}

func (r *userResponse) validate() error {
	if r.ID == 0 {
		return errors.New("user: missing id")
	}
	if r.Email == "" && r.Username == "" {
		return errors.New("user: missing email and username")
	}
	return nil
}

type quizPayload struct {
	models.Quiz
}

func (q *quizPayload) validate() error {
	return validateQuiz(&q.Quiz)
}

func validateQuiz(q *models.Quiz) error {
	switch {
	case q.ID <= 0:
		return errors.New("quiz: missing id")
	case q.Question == "":
		return errors.New("quiz: empty question")
	case len(q.Options) < 2:
		return fmt.Errorf("quiz %d: %d options", q.ID, len(q.Options))
	case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
		return fmt.Errorf("quiz %d: correct answer %d out of range", q.ID, q.CorrectAnswer)
	}
	return nil
}

// generateResponse is the reply of POST /quiz/generate.
type generateResponse struct {
	Quiz    *models.Quiz `json:"quiz"`
	Message string       `json:"message"`
}

func (r *generateResponse) validate() error {
	if r.Quiz == nil {
		return errors.New("generate: missing quiz")
	}
	return validateQuiz(r.Quiz)
}

// quizEnvelope accepts either a bare quiz or {"quiz": {...}}; the server
// declares the wrapped form but answers with the bare one.
type quizEnvelope struct {
	models.Quiz
}

func (e *quizEnvelope) UnmarshalJSON(b []byte) error {
	var probe struct {
		Quiz json.RawMessage `json:"quiz"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if len(probe.Quiz) > 0 && string(probe.Quiz) != "null" {
		b = probe.Quiz
	}
	return json.Unmarshal(b, &e.Quiz)
}

func (e *quizEnvelope) validate() error {
	return validateQuiz(&e.Quiz)
}

type quizList []quizEnvelope

func (l *quizList) validate() error {
	for i := range *l {
		if err := (*l)[i].validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

type statsResponse struct {
	models.Stats
}

func (s *statsResponse) validate() error {
	if s.TotalQuizzes < 0 || s.CorrectAnswers < 0 {
		return errors.New("stats: negative counters")
	}
	return nil
}

type wrongAnswerList []models.WrongAnswer

func (l *wrongAnswerList) validate() error {
	for i, w := range *l {
		if w.QuizID == 0 {
			return fmt.Errorf("wrong answer %d: missing quiz id", i)
		}
	}
	return nil
}

type progressResponse struct {
	models.Progress
}

func (p *progressResponse) validate() error {
	if p.Accuracy < 0 || p.Accuracy > 100 {
		return fmt.Errorf("progress: accuracy %v out of range", p.Accuracy)
	}
	return nil
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *healthResponse) validate() error {
	if h.Status == "" {
		return errors.New("health: missing status")
	}
	return nil
}
