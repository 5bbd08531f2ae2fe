package api

import "errors"

// Question is one quiz question as delivered by the backend.
// CorrectAnswer is an index into Options. The backend builds options
// from real word meanings, so an out-of-range index is not rejected
// here; the quiz engine treats such a question as never correct.
type Question struct {
	ID            int      `json:"id"`
	Word          string   `json:"word" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

// Tokens is the credential pair issued by login and register.
type Tokens struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// Word is a dictionary entry.
type Word struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// LearningEntry is one saved word on the learning list.
type LearningEntry struct {
	ID   int  `json:"id"`
	Word Word `json:"word"`
}

// ReviewWord is one entry of the review screen.
type ReviewWord struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	JoinedDate string `json:"joined_date"`
}

// AttemptQuestion is one answered question inside a submitted attempt.
type AttemptQuestion struct {
	QuestionText   string `json:"question_text"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Attempt is the write-once summary of one completed quiz session.
type Attempt struct {
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Questions      []AttemptQuestion `json:"questions"`
}

// AttemptDetail is a stored attempt as returned for review.
type AttemptDetail struct {
	ID             int               `json:"id"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	CreatedAt      string            `json:"created_at"`
	Questions      []AttemptQuestion `json:"questions"`
}

// RecentQuiz is one row of the recent-attempts dashboard widget.
type RecentQuiz struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	Score    int     `json:"score"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// API errors
var (
	// ErrWordNotFound means the searched word is not in the dictionary.
	ErrWordNotFound = errors.New("word not found")

	// ErrAlreadyInList means the word was added to the learning list before.
	ErrAlreadyInList = errors.New("word already in learning list")
)
