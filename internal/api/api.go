package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/subikshagit/Vocab-bot/internal/session"
)

// Client provides typed access to the vocab API endpoints.
// Every authenticated call goes through the session client, which
// handles the bearer header and the refresh-and-retry on 401.
type Client struct {
	session *session.Client
}

// NewClient creates an API client on top of a session client.
func NewClient(session *session.Client) *Client {
	return &Client{session: session}
}

// Register creates a new account and returns its token pair.
func (c *Client) Register(ctx context.Context, name, email, password string) (Tokens, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}

	var result struct {
		Message string `json:"message"`
		Tokens  Tokens `json:"tokens"`
	}
	if err := c.doPublic(ctx, "/api/auth/register", body, &result); err != nil {
		return Tokens{}, err
	}

	return result.Tokens, nil
}

// Login authenticates by email and password and returns the token pair.
func (c *Client) Login(ctx context.Context, email, password string) (Tokens, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result struct {
		Message string `json:"message"`
		Tokens  Tokens `json:"tokens"`
	}
	if err := c.doPublic(ctx, "/api/auth/login", body, &result); err != nil {
		return Tokens{}, err
	}

	return result.Tokens, nil
}

// Profile returns the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile/", nil, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// SearchWord looks a word up in the dictionary.
// Returns ErrWordNotFound if it is not there.
func (c *Client) SearchWord(ctx context.Context, query string) (*Word, error) {
	path := "/api/words/search/?q=" + url.QueryEscape(query)

	resp, err := c.session.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrWordNotFound
	}

	var result struct {
		Found bool  `json:"found"`
		Word  *Word `json:"word"`
	}
	if err = decode(resp, &result); err != nil {
		return nil, err
	}

	if !result.Found || result.Word == nil {
		return nil, ErrWordNotFound
	}

	return result.Word, nil
}

// RandomWord returns the word of the day. The backend picks it
// deterministically from the current date, so it is stable within a day.
func (c *Client) RandomWord(ctx context.Context) (*Word, error) {
	var word Word
	if err := c.do(ctx, http.MethodGet, "/api/words/random", nil, &word); err != nil {
		return nil, err
	}

	return &word, nil
}

// AddToLearningList saves a word to the user's learning list.
// Returns ErrAlreadyInList for duplicates.
func (c *Client) AddToLearningList(ctx context.Context, wordID int) error {
	body := map[string]int{"word_id": wordID}

	resp, err := c.session.Do(ctx, http.MethodPost, "/api/learning-list/", body, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusBadRequest {
		return ErrAlreadyInList
	}

	return decode(resp, nil)
}

// LearningList returns the user's saved words.
func (c *Client) LearningList(ctx context.Context) ([]LearningEntry, error) {
	var entries []LearningEntry
	if err := c.do(ctx, http.MethodGet, "/api/learning-list/view/", nil, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// LearningListCount returns the number of saved words.
func (c *Client) LearningListCount(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/learning-list/count/", nil, &result); err != nil {
		return 0, err
	}

	return result.Count, nil
}

// ReviewWords returns the words due for review.
func (c *Client) ReviewWords(ctx context.Context) ([]ReviewWord, error) {
	var words []ReviewWord
	if err := c.do(ctx, http.MethodGet, "/api/review-words/", nil, &words); err != nil {
		return nil, err
	}

	return words, nil
}

// QuizQuestions fetches a fresh set of quiz questions.
func (c *Client) QuizQuestions(ctx context.Context) ([]Question, error) {
	var questions []Question
	if err := c.do(ctx, http.MethodGet, "/api/quiz-questions/", nil, &questions); err != nil {
		return nil, err
	}

	return questions, nil
}

// SaveAttempt persists a completed quiz attempt.
// Returns the attempt ID used by the review screen.
func (c *Client) SaveAttempt(ctx context.Context, attempt Attempt) (int, error) {
	var result struct {
		Message   string `json:"message"`
		AttemptID int    `json:"attempt_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/save-quiz-attempt/", attempt, &result); err != nil {
		return 0, err
	}

	return result.AttemptID, nil
}

// AttemptDetail returns one stored attempt with its answered questions.
func (c *Client) AttemptDetail(ctx context.Context, attemptID int) (*AttemptDetail, error) {
	path := fmt.Sprintf("/api/quiz-attempts/%d/", attemptID)

	var detail AttemptDetail
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

// Streak returns the current daily quiz streak.
func (c *Client) Streak(ctx context.Context) (int, error) {
	var result struct {
		Streak int `json:"streak"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz/streak/", nil, &result); err != nil {
		return 0, err
	}

	return result.Streak, nil
}

// AverageAccuracy returns the accuracy over all attempts, in percent.
func (c *Client) AverageAccuracy(ctx context.Context) (float64, error) {
	var result struct {
		Accuracy float64 `json:"accuracy"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz/average-accuracy/", nil, &result); err != nil {
		return 0, err
	}

	return result.Accuracy, nil
}

// RecentQuizzes returns the five most recent attempts.
func (c *Client) RecentQuizzes(ctx context.Context) ([]RecentQuiz, error) {
	var quizzes []RecentQuiz
	if err := c.do(ctx, http.MethodGet, "/api/quiz/recent/", nil, &quizzes); err != nil {
		return nil, err
	}

	return quizzes, nil
}

// AIDefinition asks the backend's assistant for a definition.
func (c *Client) AIDefinition(ctx context.Context, word string) (string, error) {
	path := "/api/ai-definition/?word=" + url.QueryEscape(word)

	var result struct {
		Definition string `json:"definition"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return "", err
	}

	return result.Definition, nil
}

// do performs an authenticated request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.session.Do(ctx, method, path, body, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	return decode(resp, out)
}

// doPublic performs an unauthenticated request and decodes the response.
func (c *Client) doPublic(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.session.DoPublic(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	return decode(resp, out)
}

// decode turns an error status into an error and unmarshals a success
// body into out. out may be nil when the body does not matter.
func decode(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}

		var message string
		if json.Unmarshal(data, &apiErr) == nil {
			if apiErr.Error != "" {
				message = apiErr.Error
			} else {
				message = apiErr.Detail
			}
		}

		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
