package services

import "github.com/dmitrijs2005/drivequiz/internal/common"

var (
	ErrEmptyUpdate      = common.Precondition("nothing to update")
	ErrInvalidQuiz      = common.Precondition("a quiz needs a question and at least two options")
	ErrAnswerOutOfRange = common.Precondition("the correct answer must be one of the options")
	ErrUnknownCategory  = common.Precondition("unknown category")
)
