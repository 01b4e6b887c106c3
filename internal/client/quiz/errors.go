package quiz

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/drivequiz/internal/client/client"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

// Local rejections. All of them match common.ErrPreconditionFailed and are
// returned before any network call.
var (
	ErrBusy             = common.Precondition("a request is already in progress")
	ErrNoMedia          = common.Precondition("upload a video first")
	ErrNoQuiz           = common.Precondition("no quiz in progress")
	ErrNoSelection      = common.Precondition("select an answer first")
	ErrOptionOutOfRange = common.Precondition("no such option")
	ErrAlreadyGraded    = common.Precondition("this quiz has already been graded")
	ErrNothingToRetry   = common.Precondition("the answer is already recorded")
	ErrNotVideo         = common.Precondition("only video files are accepted")
	ErrEmptyMedia       = common.Precondition("the video file is empty")
	ErrMediaTooLarge    = common.Precondition("the video file is too large")
	ErrUnknownCategory  = common.Precondition("unknown category")
)

const (
	msgCannotReachServer = "cannot reach server"
	msgSessionExpired    = "session expired, please log in again"
	msgCancelled         = "request cancelled"
	msgBadQuiz           = "the server returned an unusable quiz"
	msgGenerateFailed    = "quiz generation failed"
	msgRecordFailed      = "the answer could not be recorded"
)

// requestFailure turns an API error into a user-facing Failure.
func requestFailure(err error, fallback string) *common.Failure {
	switch {
	case errors.Is(err, context.Canceled):
		return common.NewFailure(common.ErrConnectivity, msgCancelled, err)
	case errors.Is(err, client.ErrUnauthorized):
		return common.NewFailure(common.ErrUnauthorized, msgSessionExpired, err)
	case errors.Is(err, client.ErrUnavailable):
		return common.NewFailure(common.ErrConnectivity, msgCannotReachServer, err)
	case errors.Is(err, client.ErrMalformedResponse):
		return common.NewFailure(common.ErrValidationRejected, msgBadQuiz, err)
	}
	msg := client.DetailOf(err)
	if msg == "" {
		msg = fallback
	}
	return common.NewFailure(client.Classify(err), msg, err)
}
