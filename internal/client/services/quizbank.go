package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/drivequiz/internal/client/catalog"
	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

// DefaultPageSize matches the server's default page.
const DefaultPageSize = 100

type QuizAPI interface {
	ListQuizzes(ctx context.Context, skip, limit int) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
	CreateQuiz(ctx context.Context, in models.QuizCreate) (*models.Quiz, error)
}

// QuizBank browses and authors the quizzes stored on the server.
type QuizBank interface {
	List(ctx context.Context, skip, limit int) ([]models.Quiz, error)
	Get(ctx context.Context, id int64) (*models.Quiz, error)
	Create(ctx context.Context, in models.QuizCreate) (*models.Quiz, error)
}

type quizBank struct {
	api QuizAPI
}

func NewQuizBank(api QuizAPI) QuizBank {
	return &quizBank{api: api}
}

func (b *quizBank) List(ctx context.Context, skip, limit int) ([]models.Quiz, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	qs, err := b.api.ListQuizzes(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return qs, nil
}

func (b *quizBank) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	q, err := b.api.GetQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz %d: %w", id, err)
	}
	return q, nil
}

// Create checks the quiz locally before sending it. The category may be
// given as a label or an alias.
func (b *quizBank) Create(ctx context.Context, in models.QuizCreate) (*models.Quiz, error) {
	label, err := catalog.ParseCategory(in.Category)
	if err != nil {
		return nil, ErrUnknownCategory
	}
	in.Category = label

	in.Question = strings.TrimSpace(in.Question)
	if in.Question == "" || len(in.Options) < 2 {
		return nil, ErrInvalidQuiz
	}
	for _, o := range in.Options {
		if strings.TrimSpace(o) == "" {
			return nil, ErrInvalidQuiz
		}
	}
	if in.CorrectAnswer < 0 || in.CorrectAnswer >= len(in.Options) {
		return nil, ErrAnswerOutOfRange
	}

	q, err := b.api.CreateQuiz(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return q, nil
}
