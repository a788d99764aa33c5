package accounts

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ayush/microblog/backend/internal/errs"
	"github.com/ayush/microblog/backend/internal/models"
)

// AccountStore defines the interface for account persistence.
// Lookups return (nil, nil) when no account matches.
type AccountStore interface {
	CreateAccount(ctx context.Context, username, password string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByCredentials(ctx context.Context, username, password string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
}

// Service validates and persists account registrations and performs the
// credential lookup behind login. It holds no state beyond its store handle.
type Service struct {
	store AccountStore
	log   zerolog.Logger
}

func NewService(store AccountStore, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Register validates the candidate account and persists it.
//
// Checks run in order and stop at the first failure: password shorter than
// four characters, empty username, username already taken. Nothing is
// written until every check passes. The uniqueness check and the insert are
// two separate statements; two concurrent registrations for the same
// username can both pass the check, and the schema has no unique constraint
// to catch them.
func (s *Service) Register(ctx context.Context, username, password string) (*models.Account, error) {
	if len(password) < 4 {
		return nil, errs.Reject(errs.ReasonPasswordTooShort)
	}
	if len(username) == 0 {
		return nil, errs.Reject(errs.ReasonUsernameEmpty)
	}

	existing, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		// A failed lookup is treated as "no match": the insert proceeds.
		s.log.Error().Err(err).Str("op", "register").Msg("username lookup failed")
		existing = nil
	}
	if existing != nil {
		return nil, errs.Reject(errs.ReasonUsernameTaken)
	}

	created, err := s.store.CreateAccount(ctx, username, password)
	if err != nil {
		s.log.Error().Err(err).Str("op", "register").Msg("account insert failed")
		return nil, errs.Reject(errs.ReasonNotPersisted)
	}
	return created, nil
}

// Login returns the account whose username and password both match exactly.
// There is no hashing and no session: a match is the entire login.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.store.GetAccountByCredentials(ctx, username, password)
	if err != nil {
		s.log.Error().Err(err).Str("op", "login").Msg("credential lookup failed")
		account = nil
	}
	if account == nil {
		return nil, errs.Reject(errs.ReasonBadCredentials)
	}
	return account, nil
}

// Exists reports whether an account with the given id is currently stored.
// The message service uses it to validate authorship; a failed lookup reads
// as "does not exist".
func (s *Service) Exists(ctx context.Context, id int64) bool {
	account, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", id).Msg("account lookup failed")
		return false
	}
	return account != nil
}
