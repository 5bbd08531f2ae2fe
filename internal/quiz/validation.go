package quiz

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/subikshagit/Vocab-bot/internal/api"
)

// validateQuestions rejects an empty or malformed question list before
// a session is built from it. A negative correct index is rejected
// here; an index beyond the options is accepted and simply never scores.
func validateQuestions(v *validator.Validate, questions []api.Question) error {
	if len(questions) == 0 {
		return errors.New("question list is empty")
	}

	for i, question := range questions {
		if err := v.Struct(question); err != nil {
			return fmt.Errorf("question %d is malformed: %w", i, err)
		}
	}

	return nil
}
