// Package errs defines the result vocabulary shared by the account and
// message services.
//
// Every service operation ends in one of three ways: a populated entity, a
// Rejection carrying a reason code, or ErrNotFound. Keeping the three
// distinct means callers can't confuse "no data" with "bad input".
package errs

import "errors"

// Reason identifies why an operation was rejected.
type Reason string

const (
	ReasonPasswordTooShort Reason = "password_too_short"
	ReasonUsernameEmpty    Reason = "username_empty"
	ReasonUsernameTaken    Reason = "username_taken"
	ReasonBadCredentials   Reason = "bad_credentials"
	ReasonTextLength       Reason = "text_length"
	ReasonUnknownAuthor    Reason = "unknown_author"
	ReasonNoSuchMessage    Reason = "no_such_message"

	// ReasonNotPersisted covers a write that did not take effect. A store
	// failure is deliberately indistinguishable from a legitimate
	// "nothing happened" at this boundary.
	ReasonNotPersisted Reason = "not_persisted"
)

// ErrNotFound signals absence on reads and deletes. It is not a failure:
// the HTTP boundary maps it to an empty 200 body.
var ErrNotFound = errors.New("not found")

// Rejection is a validation failure. It carries no entity and is always
// safe to retry with corrected input.
type Rejection struct {
	Reason Reason
}

func (r *Rejection) Error() string {
	return "rejected: " + string(r.Reason)
}

// Reject builds a Rejection for the given reason.
func Reject(reason Reason) error {
	return &Rejection{Reason: reason}
}

// IsRejection reports whether err is a Rejection.
func IsRejection(err error) bool {
	var rej *Rejection
	return errors.As(err, &rej)
}
