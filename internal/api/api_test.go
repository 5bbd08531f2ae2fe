package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subikshagit/Vocab-bot/internal/credstore"
	"github.com/subikshagit/Vocab-bot/internal/session"
)

func newTestAPI(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemoryStore()
	require.NoError(t, store.Set(
		context.Background(),
		credstore.Credentials{Access: "acc", Refresh: "ref"},
	))

	return NewClient(session.NewClient(server.URL, store, time.Second))
}

func TestQuizQuestions(t *testing.T) {
	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/quiz-questions/", r.URL.Path)
		require.Equal(t, "Bearer acc", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[
			{
				"id": 7,
				"word": "ephemeral",
				"question": "What is the meaning of 'ephemeral'?",
				"options": ["eternal", "short-lived"],
				"correctAnswer": 1
			}
		]`))
	}))

	questions, err := client.QuizQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, 7, questions[0].ID)
	assert.Equal(t, "ephemeral", questions[0].Word)
	assert.Equal(t, []string{"eternal", "short-lived"}, questions[0].Options)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
}

func TestSaveAttempt(t *testing.T) {
	var received Attempt

	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/save-quiz-attempt/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"message": "Quiz saved!", "attempt_id": 42}`))
	}))

	attempt := Attempt{
		Score:          2,
		TotalQuestions: 3,
		Questions: []AttemptQuestion{
			{
				QuestionText:   "What is the meaning of 'ephemeral'?",
				SelectedAnswer: "short-lived",
				CorrectAnswer:  "short-lived",
				IsCorrect:      true,
			},
		},
	}

	attemptID, err := client.SaveAttempt(context.Background(), attempt)
	require.NoError(t, err)

	assert.Equal(t, 42, attemptID)
	assert.Equal(t, attempt, received)
}

func TestSearchWord(t *testing.T) {
	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/words/search/", r.URL.Path)

		switch r.URL.Query().Get("q") {
		case "lucid":
			_, _ = w.Write([]byte(`{"found": true, "word": {"id": 1, "text": "lucid", "meaning": "clear"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"found": false, "error": "Word not found in database"}`))
		}
	}))
	ctx := context.Background()

	word, err := client.SearchWord(ctx, "lucid")
	require.NoError(t, err)
	assert.Equal(t, "clear", word.Meaning)

	_, err = client.SearchWord(ctx, "nope")
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestAddToLearningList_Duplicate(t *testing.T) {
	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Word already in learning list"}`))
	}))

	err := client.AddToLearningList(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyInList)
}

func TestErrorStatusSurfacedWithMessage(t *testing.T) {
	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database exploded"}`))
	}))

	_, err := client.Streak(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database exploded")
}

func TestDashboardEndpoints(t *testing.T) {
	client := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/quiz/streak/":
			_, _ = w.Write([]byte(`{"streak": 4}`))
		case "/api/quiz/average-accuracy/":
			_, _ = w.Write([]byte(`{"accuracy": 72.5}`))
		case "/api/learning-list/count/":
			_, _ = w.Write([]byte(`{"count": 11}`))
		case "/api/quiz/recent/":
			_, _ = w.Write([]byte(`[{"id": 1, "date": "2025-10-02", "score": 3, "total": 5, "accuracy": 60.0}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	streak, err := client.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, streak)

	accuracy, err := client.AverageAccuracy(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 72.5, accuracy, 0.001)

	count, err := client.LearningListCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, count)

	recent, err := client.RecentQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 3, recent[0].Score)
}
