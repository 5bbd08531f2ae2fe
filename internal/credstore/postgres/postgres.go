package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/subikshagit/Vocab-bot/internal/credstore"
)

type Store struct {
	pool  *pgxpool.Pool
	owner string
}

// NewStore connects to postgres and prepares the credentials table.
// owner separates token pairs when several installations share one database.
func NewStore(ctx context.Context, dsn string, owner string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS credentials (
		owner TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`

	if _, err = pool.Exec(ctx, query); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool, owner: owner}, nil
}

func (s *Store) Get(ctx context.Context) (credstore.Credentials, error) {
	query := `
	SELECT access_token, refresh_token FROM credentials WHERE owner = $1
	`

	var creds credstore.Credentials
	err := s.pool.QueryRow(ctx, query, s.owner).Scan(&creds.Access, &creds.Refresh)
	if errors.Is(err, pgx.ErrNoRows) {
		return credstore.Credentials{}, credstore.ErrNotFound
	}
	if err != nil {
		return credstore.Credentials{}, err
	}

	if creds.Empty() {
		return credstore.Credentials{}, credstore.ErrNotFound
	}

	return creds, nil
}

func (s *Store) Set(ctx context.Context, creds credstore.Credentials) error {
	query := `
	INSERT INTO credentials (owner, access_token, refresh_token, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (owner) DO UPDATE
	SET access_token = $2, refresh_token = $3, updated_at = now()
	`

	_, err := s.pool.Exec(ctx, query, s.owner, creds.Access, creds.Refresh)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	query := `
	DELETE FROM credentials WHERE owner = $1
	`

	_, err := s.pool.Exec(ctx, query, s.owner)
	return err
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
