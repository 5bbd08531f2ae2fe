package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/subikshagit/Vocab-bot/internal/api"
)

// Engine drives one quiz session from question fetch through answer
// locking and scoring to the submitted attempt record.
//
// The engine belongs to a single user session and is not safe for
// concurrent use.
type Engine struct {
	service  Service
	validate *validator.Validate
	session  *Session
}

// NewEngine creates an Engine in the loading state.
func NewEngine(service Service) *Engine {
	return &Engine{
		service:  service,
		validate: validator.New(),
	}
}

// State returns the current state of the engine.
func (e *Engine) State() State {
	if e.session == nil {
		return StateLoading
	}

	return e.session.State
}

// LoadQuestions fetches the question list and starts a session.
// On failure the engine stays in the loading state and can be retried
// by the user; there is no automatic retry.
func (e *Engine) LoadQuestions(ctx context.Context) error {
	if e.session != nil {
		return fmt.Errorf("can not load questions, quiz is in state %q", e.session.State)
	}

	fetched, err := e.service.QuizQuestions(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if err = validateQuestions(e.validate, fetched); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	questions := make([]Question, len(fetched))
	for i, q := range fetched {
		questions[i] = Question{
			ID:       q.ID,
			Word:     q.Word,
			Text:     q.Question,
			Options:  q.Options,
			Correct:  q.CorrectAnswer,
			Selected: NoAnswer,
		}
	}

	e.session = &Session{
		ID:        uuid.NewString(),
		Questions: questions,
		State:     StateActive,
	}

	slog.Debug("quiz session started", "session_id", e.session.ID, "questions", len(questions))

	return nil
}

// SelectAnswer locks in the option at index for the current question.
// A second call while the question is already answered is a no-op, so a
// double click can not move the selection or the score. Never touches
// the network.
func (e *Engine) SelectAnswer(index int) error {
	s := e.session
	if s == nil {
		return errors.New("quiz is not loaded")
	}

	if s.State == StateAnswered {
		return nil
	}

	if s.State != StateActive {
		return fmt.Errorf("can not answer in state %q", s.State)
	}

	question := &s.Questions[s.Current]
	if index < 0 || index >= len(question.Options) {
		return errors.New("invalid index of answer")
	}

	question.Selected = index
	if question.IsCorrect() {
		s.Score++
	}

	s.State = StateAnswered

	return nil
}

// SelectAnswerByLetter locks in an answer by its letter (A, B, C, ...).
func (e *Engine) SelectAnswerByLetter(letter string) error {
	index, ok := LetterToIndex(letter)
	if !ok {
		return errors.New("can not convert letter to index, invalid input")
	}

	return e.SelectAnswer(index)
}

// Advance moves past the answered current question. On the last
// question it completes the session, builds the attempt record and
// submits it. A submit failure is reported as ErrSubmit but the session
// is complete regardless, so the final score stays available.
func (e *Engine) Advance(ctx context.Context) error {
	s := e.session
	if s == nil {
		return errors.New("quiz is not loaded")
	}

	if s.State != StateAnswered {
		return fmt.Errorf("can not advance in state %q", s.State)
	}

	if s.Current == len(s.Questions)-1 {
		s.State = StateComplete
		return e.submitAttempt(ctx)
	}

	s.Current++
	// Defensive: in a well-formed session the next question is untouched.
	s.Questions[s.Current].Selected = NoAnswer
	s.State = StateActive

	return nil
}

// submitAttempt sends the attempt record exactly once per completed
// session. The flag is raised before the call so a failed submission is
// not repeated by a later completion render.
func (e *Engine) submitAttempt(ctx context.Context) error {
	s := e.session
	if s.submitted {
		return nil
	}
	s.submitted = true

	attemptID, err := e.service.SaveAttempt(ctx, buildAttempt(s))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}

	s.attemptID = attemptID

	slog.Debug("quiz attempt saved", "session_id", s.ID, "attempt_id", attemptID)

	return nil
}

// buildAttempt maps the answered questions to the wire shape, turning
// option indices into option text.
func buildAttempt(s *Session) api.Attempt {
	attempt := api.Attempt{
		Score:          s.Score,
		TotalQuestions: len(s.Questions),
		Questions:      make([]api.AttemptQuestion, len(s.Questions)),
	}

	for i, q := range s.Questions {
		attempt.Questions[i] = api.AttemptQuestion{
			QuestionText:   q.Text,
			SelectedAnswer: optionText(q.Options, q.Selected),
			CorrectAnswer:  optionText(q.Options, q.Correct),
			IsCorrect:      q.IsCorrect(),
		}
	}

	return attempt
}

func optionText(options []string, index int) string {
	if index < 0 || index >= len(options) {
		return ""
	}

	return options[index]
}

// Reset starts the quiz over with the same question list: no re-fetch,
// score and selections cleared. The retake is a fresh session, so its
// completion submits its own attempt.
func (e *Engine) Reset() error {
	s := e.session
	if s == nil || s.State != StateComplete {
		return errors.New("can not reset, quiz is not complete")
	}

	for i := range s.Questions {
		s.Questions[i].Selected = NoAnswer
	}

	s.ID = uuid.NewString()
	s.Current = 0
	s.Score = 0
	s.submitted = false
	s.attemptID = 0
	s.State = StateActive

	return nil
}

// CurrentQuestion returns the question being shown, or nil outside the
// active/answered states.
func (e *Engine) CurrentQuestion() *Question {
	s := e.session
	if s == nil || (s.State != StateActive && s.State != StateAnswered) {
		return nil
	}

	return &s.Questions[s.Current]
}

// CurrentIndex returns the zero-based number of the current question,
// or -1 if the quiz is not running.
func (e *Engine) CurrentIndex() int {
	s := e.session
	if s == nil || (s.State != StateActive && s.State != StateAnswered) {
		return -1
	}

	return s.Current
}

// TotalQuestions returns the size of the question list.
func (e *Engine) TotalQuestions() int {
	if e.session == nil {
		return 0
	}

	return len(e.session.Questions)
}

// Score returns the running score.
func (e *Engine) Score() int {
	if e.session == nil {
		return 0
	}

	return e.session.Score
}

// AttemptID returns the backend ID of the submitted attempt.
// ok is false until a submission succeeded.
func (e *Engine) AttemptID() (int, bool) {
	s := e.session
	if s == nil || s.attemptID == 0 {
		return 0, false
	}

	return s.attemptID, true
}

// Session returns the underlying session. Read-only for callers.
func (e *Engine) Session() *Session {
	return e.session
}
