package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/microblog/backend/internal/models"
)

// PostgresStore handles account and message CRUD against PostgreSQL.
//
// Lookups return (nil, nil) when no row matches so callers can tell absence
// apart from a failed round-trip. Each method issues a single statement;
// multi-step sequences (check-then-insert, fetch-then-delete) are composed
// by the services on purpose, without a wrapping transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the accounts and messages tables if they don't exist.
//
// There is intentionally no unique index on username and no foreign key from
// messages.author_id: uniqueness and author existence are enforced by the
// services, and the schema carries nothing beyond the primary keys.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id       BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			password TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			id              BIGSERIAL PRIMARY KEY,
			author_id       BIGINT NOT NULL,
			text            TEXT   NOT NULL,
			posted_at_epoch BIGINT NOT NULL
		)
	`)
	return err
}

func (s *PostgresStore) CreateAccount(ctx context.Context, username, password string) (*models.Account, error) {
	a := models.Account{Username: username, Password: password}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password) VALUES ($1, $2) RETURNING id`,
		username, password,
	).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password FROM accounts WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByCredentials matches username and password exactly, case
// sensitive. Login is nothing more than this lookup.
func (s *PostgresStore) GetAccountByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	var a models.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password FROM accounts WHERE username = $1 AND password = $2`,
		username, password,
	).Scan(&a.ID, &a.Username, &a.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	var a models.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Username, &a.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) CreateMessage(ctx context.Context, authorID int64, text string, postedAtEpochMillis int64) (*models.Message, error) {
	m := models.Message{AuthorID: authorID, Text: text, PostedAtEpochMillis: postedAtEpochMillis}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (author_id, text, posted_at_epoch) VALUES ($1, $2, $3) RETURNING id`,
		authorID, text, postedAtEpochMillis,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

func (s *PostgresStore) GetAllMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, author_id, text, posted_at_epoch FROM messages`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (s *PostgresStore) GetMessagesByAuthor(ctx context.Context, authorID int64) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, author_id, text, posted_at_epoch FROM messages WHERE author_id = $1`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (s *PostgresStore) GetMessageByID(ctx context.Context, id int64) (*models.Message, error) {
	var m models.Message
	err := s.pool.QueryRow(ctx,
		`SELECT id, author_id, text, posted_at_epoch FROM messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.AuthorID, &m.Text, &m.PostedAtEpochMillis)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) UpdateMessageText(ctx context.Context, id int64, text string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE messages SET text = $2 WHERE id = $1`, id, text)
	return err
}

func (s *PostgresStore) DeleteMessage(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM messages WHERE id = $1`, id)
	return err
}

func scanMessages(rows pgx.Rows) ([]models.Message, error) {
	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Text, &m.PostedAtEpochMillis); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
