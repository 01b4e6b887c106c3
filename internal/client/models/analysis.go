package models

type Stats struct {
	TotalQuizzes   int       `json:"total_quizzes"`
	CorrectAnswers int       `json:"correct_answers"`
	Streak         int       `json:"streak"`
	Level          string    `json:"level"`
	Points         int       `json:"points"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

type WrongAnswer struct {
	ID         int64     `json:"id"`
	QuizID     int64     `json:"quiz_id"`
	UserAnswer string    `json:"user_answer"`
	IsReviewed bool      `json:"is_reviewed"`
	CreatedAt  Timestamp `json:"created_at"`
}

type Progress struct {
	TotalQuizzes   int     `json:"total_quizzes"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
	Level          string  `json:"level"`
}

// Dashboard bundles the analysis endpoints for a single screen.
type Dashboard struct {
	Stats        Stats
	WrongAnswers []WrongAnswer
	Progress     Progress
}
