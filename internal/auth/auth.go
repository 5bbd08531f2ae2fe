package auth

import (
	"context"
	"fmt"

	"github.com/subikshagit/Vocab-bot/internal/api"
	"github.com/subikshagit/Vocab-bot/internal/credstore"
)

// Auth ties the login endpoints to the credential store: a successful
// login or registration writes the token pair the session client reads.
type Auth struct {
	api   *api.Client
	creds credstore.Store
}

// New creates an Auth over the given API client and credential store.
func New(apiClient *api.Client, creds credstore.Store) *Auth {
	return &Auth{
		api:   apiClient,
		creds: creds,
	}
}

// Login authenticates by email and password and stores the token pair.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	email, err := ParseEmail(email)
	if err != nil {
		return err
	}

	if err = checkPassword(password); err != nil {
		return err
	}

	tokens, err := a.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return a.storeTokens(ctx, tokens)
}

// Register creates an account and stores the token pair, so a fresh
// registration is immediately logged in.
func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	name, err := ParseName(name)
	if err != nil {
		return err
	}

	email, err = ParseEmail(email)
	if err != nil {
		return err
	}

	if err = checkPassword(password); err != nil {
		return err
	}

	tokens, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	return a.storeTokens(ctx, tokens)
}

// Logout clears the stored credential pair.
func (a *Auth) Logout(ctx context.Context) error {
	return a.creds.Clear(ctx)
}

// LoggedIn reports whether a complete credential pair is stored.
func (a *Auth) LoggedIn(ctx context.Context) bool {
	_, err := a.creds.Get(ctx)
	return err == nil
}

func (a *Auth) storeTokens(ctx context.Context, tokens api.Tokens) error {
	creds := credstore.Credentials{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	}

	if creds.Empty() {
		return fmt.Errorf("backend returned an incomplete token pair")
	}

	if err := a.creds.Set(ctx, creds); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}

	return nil
}
