package quiz

import (
	"context"
	"errors"

	"github.com/subikshagit/Vocab-bot/internal/api"
)

// State of a quiz session.
// Loading is the initial state and the one the engine stays in when the
// question fetch fails. Active and Answered alternate per question.
// Complete is terminal until Reset.
type State string

const (
	StateLoading  State = "loading"
	StateActive   State = "active"
	StateAnswered State = "answered"
	StateComplete State = "complete"
)

// NoAnswer marks a question that has not been answered yet.
const NoAnswer = -1

// Question is one question inside a running session.
// Everything except Selected is server-supplied and immutable.
type Question struct {
	ID       int
	Word     string
	Text     string
	Options  []string
	Correct  int
	Selected int
}

// Answered reports whether an option has been chosen.
func (q *Question) Answered() bool {
	return q.Selected != NoAnswer
}

// IsCorrect reports whether the chosen option is the correct one.
// A question whose correct index is out of range never counts as
// correct; the server is not trusted on that field.
func (q *Question) IsCorrect() bool {
	if !q.Answered() {
		return false
	}

	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return false
	}

	return q.Selected == q.Correct
}

// Session is the state of one quiz run, owned by the engine.
type Session struct {
	ID        string
	Questions []Question
	Current   int
	Score     int
	State     State

	submitted bool
	attemptID int
}

// Service is the slice of the API the engine needs.
// *api.Client satisfies it.
type Service interface {
	// QuizQuestions fetches a fresh set of questions.
	QuizQuestions(ctx context.Context) ([]api.Question, error)

	// SaveAttempt persists a completed attempt, returning its ID.
	SaveAttempt(ctx context.Context, attempt api.Attempt) (int, error)
}

// Quiz errors
var (
	// ErrLoad means the question fetch failed or returned an unusable
	// list. The engine stays in the loading state; the user retries.
	ErrLoad = errors.New("failed to load quiz questions")

	// ErrSubmit means the finished attempt could not be persisted.
	// Non-fatal: the quiz is still complete and the score stays visible.
	ErrSubmit = errors.New("failed to save quiz attempt")
)

// AnswerLetters are the letters shown next to options (A-F).
var AnswerLetters = []string{"A", "B", "C", "D", "E", "F"}

// LetterToIndex converts a letter to an option index (A=0, B=1, ...).
func LetterToIndex(letter string) (int, bool) {
	for i, l := range AnswerLetters {
		if l == letter {
			return i, true
		}
	}

	return -1, false
}

// IndexToLetter converts an option index to a letter (0=A, 1=B, ...).
func IndexToLetter(idx int) string {
	if idx >= 0 && idx < len(AnswerLetters) {
		return AnswerLetters[idx]
	}

	return ""
}
