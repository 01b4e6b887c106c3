package quiz

// State of the quiz session.
type State int

const (
	Idle State = iota
	MediaStaged
	Generating
	AwaitingAnswer
	Submitting
	Graded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MediaStaged:
		return "media-staged"
	case Generating:
		return "generating"
	case AwaitingAnswer:
		return "awaiting-answer"
	case Submitting:
		return "submitting"
	case Graded:
		return "graded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s == Generating || s == Submitting
}
