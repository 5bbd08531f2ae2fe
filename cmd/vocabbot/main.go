package main

import (
	"context"
	"log/slog"
	"os"
	"os/user"

	"github.com/spf13/pflag"
	"github.com/subikshagit/Vocab-bot/internal/api"
	"github.com/subikshagit/Vocab-bot/internal/auth"
	"github.com/subikshagit/Vocab-bot/internal/cli"
	"github.com/subikshagit/Vocab-bot/internal/config"
	"github.com/subikshagit/Vocab-bot/internal/credstore"
	"github.com/subikshagit/Vocab-bot/internal/credstore/postgres"
	"github.com/subikshagit/Vocab-bot/internal/lib/slogcustom"
	"github.com/subikshagit/Vocab-bot/internal/session"
)

func main() {
	cfg := config.Load()

	flagAPIURL := pflag.String("api-url", cfg.APIBaseURL, "base URL of the vocab API")
	flagTokensFile := pflag.String("tokens-file", cfg.TokensFile, "path of the stored token pair")
	flagLogLevel := pflag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.Parse()

	log := slog.New(slogcustom.NewCustomHandler(os.Stderr, slogcustom.ParseLevel(*flagLogLevel)))
	slog.SetDefault(log)

	ctx := context.Background()

	store, cleanup, err := newCredStore(ctx, cfg.DatabaseURL, *flagTokensFile)
	if err != nil {
		slog.Error("failed to open credential store", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	sessionClient := session.NewClient(*flagAPIURL, store, cfg.HTTPTimeout)
	apiClient := api.NewClient(sessionClient)
	authSvc := auth.New(apiClient, store)

	app := cli.NewApp(apiClient, authSvc, os.Stdin, os.Stdout)
	if err = app.Run(ctx); err != nil {
		slog.Error("vocab bot stopped", "err", err)
		os.Exit(1)
	}
}

// newCredStore picks the credential backend: postgres when DATABASE_URL
// is set, the tokens file otherwise.
func newCredStore(ctx context.Context, databaseURL, tokensFile string) (credstore.Store, func(), error) {
	if databaseURL != "" {
		owner := "default"
		if u, err := user.Current(); err == nil {
			owner = u.Username
		}

		store, err := postgres.NewStore(ctx, databaseURL, owner)
		if err != nil {
			return nil, nil, err
		}

		return store, store.Close, nil
	}

	return credstore.NewFileStore(tokensFile), func() {}, nil
}
