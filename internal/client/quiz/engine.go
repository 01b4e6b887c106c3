// Package quiz implements the quiz session state machine: staging a video,
// generating or picking a quiz, selecting an answer, grading and recording.
//
// One Engine holds one session. Network calls happen outside the lock, and
// while one is in flight (Generating, Submitting) every mutating call fails
// with ErrBusy; Cancel aborts it.
package quiz

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/drivequiz/internal/client/catalog"
	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/attempts"
	"github.com/dmitrijs2005/drivequiz/internal/logging"
)

type API interface {
	GenerateQuiz(ctx context.Context, media models.Media, category string) (*models.Quiz, error)
	SubmitAnswer(ctx context.Context, quizID int64, answer int) (*models.AnswerAck, error)
}

type Catalog interface {
	Pick(category string) (models.Quiz, error)
}

// Journal records graded attempts locally.
type Journal interface {
	Add(ctx context.Context, a *attempts.Attempt) (int64, error)
	MarkRecorded(ctx context.Context, id int64) error
}

type Options struct {
	MaxMediaSize int64
	// Journal is optional.
	Journal Journal
	Logger  logging.Logger
}

// Result is the grading of a submitted answer.
type Result struct {
	QuizID        int64
	Selected      int
	CorrectAnswer int
	IsCorrect     bool
	Explanation   string
	// RecordErr is set when the server did not record the answer. The
	// grading stands regardless; RetryRecord tries again.
	RecordErr error
}

type transition struct{ from, to State }

type Engine struct {
	api     API
	catalog Catalog
	journal Journal
	log     logging.Logger
	maxSize int64

	mu        sync.Mutex
	state     State
	media     *models.Media
	category  string
	quiz      *models.Quiz
	selected  *int
	isCorrect *bool
	recordErr error
	lastErr   error
	attemptID int64
	cancel    context.CancelFunc

	observers []func(from, to State)
	pending   []transition
}

func NewEngine(api API, cat Catalog, opts Options) *Engine {
	if opts.MaxMediaSize <= 0 {
		opts.MaxMediaSize = DefaultMaxMediaSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Engine{
		api:      api,
		catalog:  cat,
		journal:  opts.Journal,
		log:      opts.Logger.With("component", "quiz"),
		maxSize:  opts.MaxMediaSize,
		state:    Idle,
		category: catalog.DefaultCategory,
	}
}

// OnTransition registers fn to observe state changes. Observers run after
// the engine lock is released and may call Snapshot.
func (e *Engine) OnTransition(fn func(from, to State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

func (e *Engine) lock() {
	e.mu.Lock()
}

// unlock releases the lock and then notifies observers of the transitions
// made while it was held.
func (e *Engine) unlock() {
	pending := e.pending
	e.pending = nil
	observers := e.observers
	e.mu.Unlock()

	for _, t := range pending {
		for _, fn := range observers {
			fn(t.from, t.to)
		}
	}
}

func (e *Engine) setState(to State) {
	if e.state == to {
		return
	}
	e.pending = append(e.pending, transition{from: e.state, to: to})
	e.state = to
}

// clearAttempt drops the quiz and everything derived from it.
func (e *Engine) clearAttempt() {
	e.quiz = nil
	e.selected = nil
	e.isCorrect = nil
	e.recordErr = nil
	e.attemptID = 0
}

// StageMedia accepts a single video file. Staging again replaces the media
// and discards any quiz and answer.
func (e *Engine) StageMedia(path string) (models.Media, error) {
	// checked before taking the lock: this is the local read
	media, err := inspectMedia(path, e.maxSize)

	e.lock()
	defer e.unlock()

	if e.state.Busy() {
		return models.Media{}, ErrBusy
	}
	if err != nil {
		return models.Media{}, err
	}

	e.clearAttempt()
	e.lastErr = nil
	e.media = &media
	e.setState(MediaStaged)
	e.log.Info(context.Background(), "media staged", "name", media.Name, "type", media.ContentType, "size", media.Size)
	return media, nil
}

// SetCategory chooses the category used by Generate. Labels and aliases are
// accepted.
func (e *Engine) SetCategory(category string) (string, error) {
	label, err := catalog.ParseCategory(category)
	if err != nil {
		return "", ErrUnknownCategory
	}

	e.lock()
	defer e.unlock()

	if e.state.Busy() {
		return "", ErrBusy
	}
	e.category = label
	return label, nil
}

// Generate uploads the staged media and waits for the generated quiz. On
// failure the session goes back to MediaStaged with the media kept.
func (e *Engine) Generate(ctx context.Context) (models.QuizView, error) {
	e.lock()
	if e.state.Busy() {
		e.unlock()
		return models.QuizView{}, ErrBusy
	}
	if e.media == nil {
		e.unlock()
		return models.QuizView{}, ErrNoMedia
	}

	media, category := *e.media, e.category
	e.clearAttempt()
	e.lastErr = nil
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.setState(Generating)
	e.unlock()

	defer cancel()
	q, err := e.api.GenerateQuiz(ctx, media, category)

	e.lock()
	defer e.unlock()
	e.cancel = nil

	if err != nil {
		f := requestFailure(err, msgGenerateFailed)
		e.lastErr = f
		e.setState(Failed)
		e.setState(MediaStaged)
		e.log.Warn(ctx, "quiz generation failed", "category", category, "err", err)
		return models.QuizView{}, f
	}

	q.AIGenerated = true
	if q.Category == "" {
		q.Category = category
	}
	e.quiz = q
	e.setState(AwaitingAnswer)
	e.log.Info(ctx, "quiz generated", "quiz_id", q.ID, "category", q.Category)
	return q.View(), nil
}

// Pick starts a pre-authored quiz for category (the current category when
// empty), skipping media and generation.
func (e *Engine) Pick(category string) (models.QuizView, error) {
	e.lock()
	defer e.unlock()

	if e.state.Busy() {
		return models.QuizView{}, ErrBusy
	}
	if category == "" {
		category = e.category
	}
	label, err := catalog.ParseCategory(category)
	if err != nil {
		return models.QuizView{}, ErrUnknownCategory
	}
	q, err := e.catalog.Pick(label)
	if err != nil {
		return models.QuizView{}, ErrUnknownCategory
	}

	e.clearAttempt()
	e.lastErr = nil
	e.category = label
	e.quiz = &q
	e.setState(AwaitingAnswer)
	return q.View(), nil
}

// Select sets the chosen option, replacing any previous choice.
func (e *Engine) Select(option int) error {
	e.lock()
	defer e.unlock()

	if err := e.requireAwaiting(); err != nil {
		return err
	}
	if option < 0 || option >= len(e.quiz.Options) {
		return ErrOptionOutOfRange
	}
	e.selected = &option
	return nil
}

func (e *Engine) requireAwaiting() error {
	switch {
	case e.state.Busy():
		return ErrBusy
	case e.state == Graded:
		return ErrAlreadyGraded
	case e.state != AwaitingAnswer || e.quiz == nil:
		return ErrNoQuiz
	}
	return nil
}

// Submit grades the selection against the known correct index and records
// it on the server with exactly one call. The session is Graded whatever
// the recording outcome; a recording failure is in Result.RecordErr.
func (e *Engine) Submit(ctx context.Context) (Result, error) {
	e.lock()
	if err := e.requireAwaiting(); err != nil {
		e.unlock()
		return Result{}, err
	}
	if e.selected == nil {
		e.unlock()
		return Result{}, ErrNoSelection
	}

	q := *e.quiz
	selected := *e.selected
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.setState(Submitting)
	e.unlock()

	defer cancel()
	ack, err := e.api.SubmitAnswer(ctx, q.ID, selected)

	correct := selected == q.CorrectAnswer
	if err == nil && ack != nil && ack.IsCorrect != nil && *ack.IsCorrect != correct {
		e.log.Warn(ctx, "server grading disagrees with local grading",
			"quiz_id", q.ID, "local", correct, "server", *ack.IsCorrect)
	}

	var recordErr error
	if err != nil {
		recordErr = requestFailure(err, msgRecordFailed)
		e.log.Warn(ctx, "recording answer failed", "quiz_id", q.ID, "err", err)
	}

	attemptID := e.journalAdd(ctx, q, selected, correct, err == nil)

	e.lock()
	defer e.unlock()
	e.cancel = nil
	e.isCorrect = &correct
	e.recordErr = recordErr
	e.attemptID = attemptID
	e.setState(Graded)

	return Result{
		QuizID:        q.ID,
		Selected:      selected,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     correct,
		Explanation:   q.Explanation,
		RecordErr:     recordErr,
	}, nil
}

// RetryRecord repeats the recording call after a failed Submit.
func (e *Engine) RetryRecord(ctx context.Context) error {
	e.lock()
	switch {
	case e.state.Busy():
		e.unlock()
		return ErrBusy
	case e.state != Graded:
		e.unlock()
		return ErrNoQuiz
	case e.recordErr == nil:
		e.unlock()
		return ErrNothingToRetry
	}

	quizID, selected, attemptID := e.quiz.ID, *e.selected, e.attemptID
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.setState(Submitting)
	e.unlock()

	defer cancel()
	_, err := e.api.SubmitAnswer(ctx, quizID, selected)

	if err == nil && e.journal != nil && attemptID != 0 {
		if jerr := e.journal.MarkRecorded(context.WithoutCancel(ctx), attemptID); jerr != nil {
			e.log.Error(ctx, "journal update failed", "attempt_id", attemptID, "err", jerr)
		}
	}

	e.lock()
	defer e.unlock()
	e.cancel = nil
	e.setState(Graded)
	if err != nil {
		e.recordErr = requestFailure(err, msgRecordFailed)
		return e.recordErr
	}
	e.recordErr = nil
	return nil
}

func (e *Engine) journalAdd(ctx context.Context, q models.Quiz, selected int, correct, recorded bool) int64 {
	if e.journal == nil {
		return 0
	}
	a := &attempts.Attempt{
		QuizID:      q.ID,
		Category:    q.Category,
		Question:    q.Question,
		Selected:    selected,
		Correct:     q.CorrectAnswer,
		IsCorrect:   correct,
		AIGenerated: q.AIGenerated,
		Recorded:    recorded,
	}
	id, err := e.journal.Add(context.WithoutCancel(ctx), a)
	if err != nil {
		e.log.Error(ctx, "journal append failed", "quiz_id", q.ID, "err", err)
		return 0
	}
	return id
}

// Cancel aborts the in-flight generation or submission. It reports whether
// there was anything to cancel.
func (e *Engine) Cancel() bool {
	e.lock()
	defer e.unlock()
	if e.cancel == nil {
		return false
	}
	e.cancel()
	return true
}

// Reset discards media, quiz and answer. The category is kept.
func (e *Engine) Reset() error {
	e.lock()
	defer e.unlock()

	if e.state.Busy() {
		return ErrBusy
	}
	e.clearAttempt()
	e.media = nil
	e.lastErr = nil
	e.setState(Idle)
	return nil
}

// State returns the current state.
func (e *Engine) State() State {
	e.lock()
	defer e.unlock()
	return e.state
}
