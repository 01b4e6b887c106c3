package models

type Quiz struct {
	ID            int64      `json:"id"`
	Category      string     `json:"category"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correct_answer"`
	Explanation   string     `json:"explanation"`
	VideoPath     *string    `json:"video_path,omitempty"`
	RoadElements  []string   `json:"road_elements,omitempty"`
	AIGenerated   bool       `json:"ai_generated"`
	CreatedAt     *Timestamp `json:"created_at,omitempty"`
}

// View strips the answer key.
func (q *Quiz) View() QuizView {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return QuizView{ID: q.ID, Category: q.Category, Question: q.Question, Options: opts}
}

// QuizView is what may be shown while an answer is still being chosen.
type QuizView struct {
	ID       int64
	Category string
	Question string
	Options  []string
}

type QuizCreate struct {
	Category      string   `json:"category"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	VideoPath     *string  `json:"video_path,omitempty"`
	RoadElements  []string `json:"road_elements,omitempty"`
	AIGenerated   bool     `json:"ai_generated"`
}

// AnswerAck is the server reply to a recorded answer. Fields are optional
// because only the HTTP status is relied upon.
type AnswerAck struct {
	IsCorrect     *bool  `json:"is_correct,omitempty"`
	CorrectAnswer *int   `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// Media is a staged video file, described by what was read locally.
type Media struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}
