package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/subikshagit/Vocab-bot/internal/api"
	"github.com/subikshagit/Vocab-bot/internal/auth"
	"github.com/subikshagit/Vocab-bot/internal/quiz"
	"github.com/subikshagit/Vocab-bot/internal/session"
)

// App is the interactive terminal front end.
type App struct {
	api  *api.Client
	auth *auth.Auth
	in   *bufio.Scanner
	out  io.Writer
}

// NewApp creates the App reading commands from in and writing to out.
func NewApp(apiClient *api.Client, authSvc *auth.Auth, in io.Reader, out io.Writer) *App {
	return &App{
		api:  apiClient,
		auth: authSvc,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run drives the menu loop until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, msgWelcome)

	if !a.auth.LoggedIn(ctx) {
		if err := a.login(ctx); err != nil {
			return err
		}
	}

	a.showWordOfTheDay(ctx)

	for {
		fmt.Fprintln(a.out, msgMenu)

		command, ok := a.prompt("> ")
		if !ok {
			return nil
		}

		var err error

		switch strings.ToLower(command) {
		case "q":
			err = a.runQuiz(ctx)
		case "s":
			err = a.searchWord(ctx)
		case "w":
			a.showWordOfTheDay(ctx)
		case "l":
			err = a.showLearningList(ctx)
		case "r":
			err = a.showReviewWords(ctx)
		case "d":
			err = a.showDashboard(ctx)
		case "o":
			if err = a.auth.Logout(ctx); err == nil {
				err = a.login(ctx)
			}
		case "x", "exit", "quit":
			return nil
		default:
			continue
		}

		if errors.Is(err, session.ErrSessionExpired) || errors.Is(err, session.ErrUnauthenticated) {
			fmt.Fprintln(a.out, color.YellowString(msgSessionExpired))

			if err = a.login(ctx); err != nil {
				return err
			}

			continue
		}

		if err != nil {
			fmt.Fprintln(a.out, color.RedString(err.Error()))
		}
	}
}

func (a *App) login(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, msgLoginFirst)

		email, ok := a.prompt("email: ")
		if !ok {
			return errors.New("login aborted")
		}

		password, ok := a.prompt("password: ")
		if !ok {
			return errors.New("login aborted")
		}

		err := a.auth.Login(ctx, email, password)
		if err == nil {
			fmt.Fprintln(a.out, color.GreenString("Logged in."))
			return nil
		}

		fmt.Fprintln(a.out, color.RedString(err.Error()))
	}
}

// runQuiz drives one quiz session: fetch, answer per letter, advance,
// final score, optional retake on the same questions.
func (a *App) runQuiz(ctx context.Context) error {
	engine := quiz.NewEngine(a.api)

	if err := engine.LoadQuestions(ctx); err != nil {
		if errors.Is(err, quiz.ErrLoad) {
			slog.Debug("quiz load failed", "err", err)
			fmt.Fprintln(a.out, color.YellowString(msgQuizLoadFailed))

			if errors.Is(err, session.ErrSessionExpired) {
				return session.ErrSessionExpired
			}

			return nil
		}

		return err
	}

	for {
		for engine.State() == quiz.StateActive {
			a.renderQuestion(engine)

			letter, ok := a.prompt("answer: ")
			if !ok {
				return nil
			}

			if err := engine.SelectAnswerByLetter(strings.ToUpper(strings.TrimSpace(letter))); err != nil {
				fmt.Fprintln(a.out, color.RedString(err.Error()))
				continue
			}

			a.renderFeedback(engine)

			if err := a.advance(ctx, engine); err != nil {
				return err
			}
		}

		a.renderResult(engine)

		answer, ok := a.prompt(msgQuizRetake + " ")
		if !ok || strings.ToLower(answer) != "y" {
			return nil
		}

		if err := engine.Reset(); err != nil {
			return err
		}
	}
}

// advance surfaces a failed attempt submission without ending the quiz:
// the local result is still shown.
func (a *App) advance(ctx context.Context, engine *quiz.Engine) error {
	err := engine.Advance(ctx)
	if err == nil {
		return nil
	}

	if errors.Is(err, quiz.ErrSubmit) {
		slog.Debug("attempt submission failed", "err", err)
		fmt.Fprintln(a.out, color.YellowString(msgAttemptNotSaved))

		return nil
	}

	return err
}

func (a *App) renderQuestion(engine *quiz.Engine) {
	question := engine.CurrentQuestion()
	if question == nil {
		return
	}

	fmt.Fprintf(a.out, "\nQuestion %d of %d\n", engine.CurrentIndex()+1, engine.TotalQuestions())
	fmt.Fprintln(a.out, color.HiWhiteString(question.Word))
	fmt.Fprintln(a.out, question.Text)

	for i, option := range question.Options {
		fmt.Fprintf(a.out, "  %s) %s\n", quiz.IndexToLetter(i), option)
	}
}

func (a *App) renderFeedback(engine *quiz.Engine) {
	question := engine.CurrentQuestion()
	if question == nil || !question.Answered() {
		return
	}

	if question.IsCorrect() {
		fmt.Fprintln(a.out, color.GreenString("Correct! Well done!"))
		return
	}

	if question.Correct < 0 || question.Correct >= len(question.Options) {
		fmt.Fprintln(a.out, color.RedString("Incorrect."))
		return
	}

	fmt.Fprintln(a.out, color.RedString(
		"Incorrect. The answer is %s) %s",
		quiz.IndexToLetter(question.Correct), question.Options[question.Correct]))
}

func (a *App) renderResult(engine *quiz.Engine) {
	total := engine.TotalQuestions()
	score := engine.Score()

	fmt.Fprintln(a.out, "\nQuiz complete!")
	fmt.Fprintf(a.out, "Your score: %d out of %d (%d%% accuracy)\n",
		score, total, int(float64(score)/float64(total)*100))

	if attemptID, ok := engine.AttemptID(); ok {
		fmt.Fprintf(a.out, "Saved as attempt #%d\n", attemptID)
	}
}

func (a *App) showWordOfTheDay(ctx context.Context) {
	word, err := a.api.RandomWord(ctx)
	if err != nil {
		slog.Debug("word of the day unavailable", "err", err)
		return
	}

	fmt.Fprintf(a.out, "\nWord of the day: %s — %s\n", color.HiWhiteString(word.Text), word.Meaning)
}

func (a *App) searchWord(ctx context.Context) error {
	query, ok := a.prompt("word: ")
	if !ok {
		return nil
	}

	word, err := a.api.SearchWord(ctx, query)
	if errors.Is(err, api.ErrWordNotFound) {
		fmt.Fprintln(a.out, "Not in the dictionary.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s — %s\n", color.HiWhiteString(word.Text), word.Meaning)
	if word.Example != "" {
		fmt.Fprintf(a.out, "Example: %s\n", word.Example)
	}

	save, ok := a.prompt("Add to learning list? [y/n] ")
	if ok && strings.ToLower(save) == "y" {
		err = a.api.AddToLearningList(ctx, word.ID)
		if errors.Is(err, api.ErrAlreadyInList) {
			fmt.Fprintln(a.out, "Already on your list.")
			return nil
		}

		return err
	}

	return nil
}

func (a *App) showLearningList(ctx context.Context) error {
	entries, err := a.api.LearningList(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Your learning list is empty.")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "  %s — %s\n", color.HiWhiteString(entry.Word.Text), entry.Word.Meaning)
	}

	return nil
}

func (a *App) showReviewWords(ctx context.Context) error {
	words, err := a.api.ReviewWords(ctx)
	if err != nil {
		return err
	}

	if len(words) == 0 {
		fmt.Fprintln(a.out, "Nothing to review.")
		return nil
	}

	for _, word := range words {
		fmt.Fprintf(a.out, "  %s — %s\n", color.HiWhiteString(word.Text), word.Meaning)
	}

	return nil
}

func (a *App) showDashboard(ctx context.Context) error {
	streak, err := a.api.Streak(ctx)
	if err != nil {
		return err
	}

	accuracy, err := a.api.AverageAccuracy(ctx)
	if err != nil {
		return err
	}

	count, err := a.api.LearningListCount(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Streak: %d days\nAverage accuracy: %.1f%%\nWords on your list: %d\n",
		streak, accuracy, count)

	recent, err := a.api.RecentQuizzes(ctx)
	if err != nil {
		return err
	}

	for _, attempt := range recent {
		fmt.Fprintf(a.out, "  %s  %d/%d (%.0f%%)\n",
			attempt.Date, attempt.Score, attempt.Total, attempt.Accuracy)
	}

	return nil
}

// prompt prints the label and reads one trimmed line.
// ok is false when input is exhausted.
func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)

	if !a.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(a.in.Text()), true
}
