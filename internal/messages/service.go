package messages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ayush/microblog/backend/internal/errs"
	"github.com/ayush/microblog/backend/internal/models"
)

// Message text must be 1 to 254 characters long.
const maxTextLength = 254

// MessageStore defines the interface for message persistence.
// GetMessageByID returns (nil, nil) when no message matches.
type MessageStore interface {
	CreateMessage(ctx context.Context, authorID int64, text string, postedAtEpochMillis int64) (*models.Message, error)
	GetAllMessages(ctx context.Context) ([]models.Message, error)
	GetMessagesByAuthor(ctx context.Context, authorID int64) ([]models.Message, error)
	GetMessageByID(ctx context.Context, id int64) (*models.Message, error)
	UpdateMessageText(ctx context.Context, id int64, text string) error
	DeleteMessage(ctx context.Context, id int64) error
}

// AccountChecker reports whether an account id resolves to a stored account.
// Satisfied by *accounts.Service.
type AccountChecker interface {
	Exists(ctx context.Context, id int64) bool
}

// Service validates and persists message mutations and serves message reads.
// Reads always go back to the store; nothing is cached in process.
type Service struct {
	store    MessageStore
	accounts AccountChecker
	log      zerolog.Logger
}

func NewService(store MessageStore, accounts AccountChecker, log zerolog.Logger) *Service {
	return &Service{store: store, accounts: accounts, log: log}
}

func textLengthOK(text string) bool {
	return len(text) >= 1 && len(text) <= maxTextLength
}

// Create validates the candidate message and persists it. The text must be
// 1 to 254 characters and the author must exist at this moment; authorId,
// text and postedAtEpochMillis are stored unchanged.
func (s *Service) Create(ctx context.Context, authorID int64, text string, postedAtEpochMillis int64) (*models.Message, error) {
	if !textLengthOK(text) {
		return nil, errs.Reject(errs.ReasonTextLength)
	}
	if !s.accounts.Exists(ctx, authorID) {
		return nil, errs.Reject(errs.ReasonUnknownAuthor)
	}

	created, err := s.store.CreateMessage(ctx, authorID, text, postedAtEpochMillis)
	if err != nil {
		s.log.Error().Err(err).Str("op", "create").Msg("message insert failed")
		return nil, errs.Reject(errs.ReasonNotPersisted)
	}
	return created, nil
}

// GetAll returns every stored message in store order. It never fails: a
// store error is logged and read as "no messages".
func (s *Service) GetAll(ctx context.Context) []models.Message {
	list, err := s.store.GetAllMessages(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("op", "get_all").Msg("message query failed")
		return []models.Message{}
	}
	if list == nil {
		list = []models.Message{}
	}
	return list
}

// GetByAuthor returns every message posted by the given account. An unknown
// author is not an error; the result is simply empty.
func (s *Service) GetByAuthor(ctx context.Context, authorID int64) []models.Message {
	list, err := s.store.GetMessagesByAuthor(ctx, authorID)
	if err != nil {
		s.log.Error().Err(err).Int64("author_id", authorID).Msg("message query failed")
		return []models.Message{}
	}
	if list == nil {
		list = []models.Message{}
	}
	return list
}

// GetByID returns the message with the given id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, err := s.store.GetMessageByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("message_id", id).Msg("message lookup failed")
		m = nil
	}
	if m == nil {
		return nil, errs.ErrNotFound
	}
	return m, nil
}

// UpdateText replaces the text of an existing message. The length check runs
// first, then the message is fetched, then the update is applied; the fetch
// and the update are two separate statements, so a concurrent delete can
// slip between them. The returned message carries the new text with the
// original authorId and postedAtEpochMillis.
func (s *Service) UpdateText(ctx context.Context, id int64, text string) (*models.Message, error) {
	if !textLengthOK(text) {
		return nil, errs.Reject(errs.ReasonTextLength)
	}

	existing, err := s.store.GetMessageByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("message_id", id).Msg("message lookup failed")
		existing = nil
	}
	if existing == nil {
		return nil, errs.Reject(errs.ReasonNoSuchMessage)
	}

	if err := s.store.UpdateMessageText(ctx, id, text); err != nil {
		s.log.Error().Err(err).Int64("message_id", id).Msg("message update failed")
		return nil, errs.Reject(errs.ReasonNotPersisted)
	}

	updated := *existing
	updated.Text = text
	return &updated, nil
}

// DeleteByID removes the message with the given id and returns its
// pre-deletion snapshot. When no such message exists — or the delete does
// not take effect — it returns ErrNotFound and mutates nothing; a repeat
// delete is a harmless no-op.
func (s *Service) DeleteByID(ctx context.Context, id int64) (*models.Message, error) {
	existing, err := s.store.GetMessageByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("message_id", id).Msg("message lookup failed")
		existing = nil
	}
	if existing == nil {
		return nil, errs.ErrNotFound
	}

	if err := s.store.DeleteMessage(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("message_id", id).Msg("message delete failed")
		return nil, errs.ErrNotFound
	}
	return existing, nil
}
