package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/client/repositories"
	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/attempts"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

type fakeAPI struct {
	StatsFn    func(ctx context.Context) (*models.Stats, error)
	WrongFn    func(ctx context.Context) ([]models.WrongAnswer, error)
	ProgressFn func(ctx context.Context) (*models.Progress, error)

	ProfileUser *models.User
	ProfileErr  error

	LastUpdate  models.ProfileUpdate
	UpdateCalls int

	ListResult []models.Quiz
	LastSkip   int
	LastLimit  int

	GetResult *models.Quiz
	GetErr    error

	LastCreate  models.QuizCreate
	CreateCalls int
}

func (f *fakeAPI) Stats(ctx context.Context) (*models.Stats, error) {
	if f.StatsFn == nil {
		return &models.Stats{}, nil
	}
	return f.StatsFn(ctx)
}

func (f *fakeAPI) WrongAnswers(ctx context.Context) ([]models.WrongAnswer, error) {
	if f.WrongFn == nil {
		return nil, nil
	}
	return f.WrongFn(ctx)
}

func (f *fakeAPI) Progress(ctx context.Context) (*models.Progress, error) {
	if f.ProgressFn == nil {
		return &models.Progress{}, nil
	}
	return f.ProgressFn(ctx)
}

func (f *fakeAPI) Profile(context.Context) (*models.User, error) {
	return f.ProfileUser, f.ProfileErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, in models.ProfileUpdate) (*models.User, error) {
	f.UpdateCalls++
	f.LastUpdate = in
	return &models.User{ID: 1, Email: in.Email, Username: in.Username}, nil
}

func (f *fakeAPI) ListQuizzes(_ context.Context, skip, limit int) ([]models.Quiz, error) {
	f.LastSkip, f.LastLimit = skip, limit
	return f.ListResult, nil
}

func (f *fakeAPI) GetQuiz(context.Context, int64) (*models.Quiz, error) {
	return f.GetResult, f.GetErr
}

func (f *fakeAPI) CreateQuiz(_ context.Context, in models.QuizCreate) (*models.Quiz, error) {
	f.CreateCalls++
	f.LastCreate = in
	return &models.Quiz{ID: 42, Category: in.Category, Question: in.Question, Options: in.Options}, nil
}

func TestDashboard_CombinesAllThree(t *testing.T) {
	api := &fakeAPI{
		StatsFn: func(context.Context) (*models.Stats, error) {
			return &models.Stats{TotalQuizzes: 10, CorrectAnswers: 7, Level: "초급"}, nil
		},
		WrongFn: func(context.Context) ([]models.WrongAnswer, error) {
			return []models.WrongAnswer{{ID: 1, QuizID: 3, UserAnswer: "2"}}, nil
		},
		ProgressFn: func(context.Context) (*models.Progress, error) {
			return &models.Progress{TotalQuizzes: 10, CorrectAnswers: 7, Accuracy: 70}, nil
		},
	}

	d, err := NewAnalysisService(api).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, d.Stats.TotalQuizzes)
	assert.Equal(t, "초급", d.Stats.Level)
	require.Len(t, d.WrongAnswers, 1)
	assert.Equal(t, int64(3), d.WrongAnswers[0].QuizID)
	assert.InDelta(t, 70.0, d.Progress.Accuracy, 0.001)
}

func TestDashboard_RequestsRunConcurrently(t *testing.T) {
	var inFlight, peak int32
	enter := func() {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}
	api := &fakeAPI{
		StatsFn:    func(context.Context) (*models.Stats, error) { enter(); return &models.Stats{}, nil },
		WrongFn:    func(context.Context) ([]models.WrongAnswer, error) { enter(); return nil, nil },
		ProgressFn: func(context.Context) (*models.Progress, error) { enter(); return &models.Progress{}, nil },
	}

	d, err := NewAnalysisService(api).Dashboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.WrongAnswers)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestDashboard_FirstFailureCancelsTheRest(t *testing.T) {
	boom := errors.New("stats down")
	api := &fakeAPI{
		StatsFn: func(context.Context) (*models.Stats, error) { return nil, boom },
		WrongFn: func(ctx context.Context) ([]models.WrongAnswer, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		ProgressFn: func(ctx context.Context) (*models.Progress, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	d, err := NewAnalysisService(api).Dashboard(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stats")
	assert.Nil(t, d)
}

func TestSingleSections(t *testing.T) {
	cause := errors.New("offline")
	api := &fakeAPI{
		WrongFn:    func(context.Context) ([]models.WrongAnswer, error) { return nil, cause },
		ProgressFn: func(context.Context) (*models.Progress, error) { return &models.Progress{Level: "중급"}, nil },
	}
	svc := NewAnalysisService(api)

	_, err := svc.WrongAnswers(context.Background())
	require.ErrorIs(t, err, cause)

	p, err := svc.Progress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "중급", p.Level)
}

func TestProfile(t *testing.T) {
	api := &fakeAPI{ProfileUser: &models.User{ID: 7, Username: "kim"}}
	svc := NewAnalysisService(api)

	u, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kim", u.DisplayName())

	api.ProfileErr = errors.New("gone")
	_, err = svc.Profile(context.Background())
	require.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	api := &fakeAPI{}
	svc := NewAnalysisService(api)

	_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{})
	require.ErrorIs(t, err, ErrEmptyUpdate)
	assert.ErrorIs(t, err, common.ErrPreconditionFailed)
	assert.Zero(t, api.UpdateCalls)

	u, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Username: "lee"})
	require.NoError(t, err)
	assert.Equal(t, "lee", u.Username)
	assert.Equal(t, models.ProfileUpdate{Username: "lee"}, api.LastUpdate)
}

func TestQuizBank_ListDefaults(t *testing.T) {
	api := &fakeAPI{ListResult: []models.Quiz{{ID: 1}, {ID: 2}}}
	bank := NewQuizBank(api)

	qs, err := bank.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Len(t, qs, 2)
	assert.Equal(t, 0, api.LastSkip)
	assert.Equal(t, DefaultPageSize, api.LastLimit)

	_, err = bank.List(context.Background(), 20, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, api.LastSkip)
	assert.Equal(t, 5, api.LastLimit)
}

func TestQuizBank_GetWrapsError(t *testing.T) {
	cause := errors.New("not found")
	_, err := NewQuizBank(&fakeAPI{GetErr: cause}).Get(context.Background(), 9)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "9")
}

func TestQuizBank_CreateValidatesLocally(t *testing.T) {
	valid := models.QuizCreate{
		Category:      "parking",
		Question:      "  어디에 주차할 수 있나?  ",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 2,
	}

	tests := []struct {
		name   string
		mutate func(q *models.QuizCreate)
		want   error
	}{
		{"unknown category", func(q *models.QuizCreate) { q.Category = "weather" }, ErrUnknownCategory},
		{"blank question", func(q *models.QuizCreate) { q.Question = "   " }, ErrInvalidQuiz},
		{"one option", func(q *models.QuizCreate) { q.Options = []string{"a"} }, ErrInvalidQuiz},
		{"blank option", func(q *models.QuizCreate) { q.Options = []string{"a", " "} }, ErrInvalidQuiz},
		{"answer out of range", func(q *models.QuizCreate) { q.CorrectAnswer = 3 }, ErrAnswerOutOfRange},
		{"negative answer", func(q *models.QuizCreate) { q.CorrectAnswer = -1 }, ErrAnswerOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			in := valid
			in.Options = append([]string(nil), valid.Options...)
			tt.mutate(&in)

			_, err := NewQuizBank(api).Create(context.Background(), in)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, api.CreateCalls)
		})
	}

	api := &fakeAPI{}
	q, err := NewQuizBank(api).Create(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, int64(42), q.ID)
	assert.Equal(t, "주차 및 정차", api.LastCreate.Category)
	assert.Equal(t, "어디에 주차할 수 있나?", api.LastCreate.Question)
}

func TestHistory_ReadsJournal(t *testing.T) {
	ctx := context.Background()
	repos, err := repositories.Open(ctx, filepath.Join(t.TempDir(), "data", "drivequiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	for i, ok := range []bool{true, false, false} {
		_, err := repos.Attempts.Add(ctx, &attempts.Attempt{
			QuizID: int64(i + 1), Category: "고속도로", Question: "q", Selected: 1, Correct: 1, IsCorrect: ok,
		})
		require.NoError(t, err)
	}

	h := NewHistoryService(repos.Attempts)

	recent, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	mistakes, err := h.Mistakes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mistakes, 1)
	assert.False(t, mistakes[0].IsCorrect)

	sum, err := h.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum, 1)
	assert.Equal(t, 3, sum[0].Total)
	assert.Equal(t, 1, sum[0].Correct)
}
