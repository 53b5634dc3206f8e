package errors

import "errors"

// This package defines the sentinel errors shared by every layer. Services wrap
// them with %w and the API layer maps them to HTTP status codes with errors.Is.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed local validation. No
	// network call is made once this is returned.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that the operation conflicts with the current
	// state, e.g. sending a message while a reply is still streaming.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller may not perform the action.
	ErrPermission = errors.New("permission denied")

	// ErrUnauthenticated signifies that the session has not signed in.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrNotConfigured signifies that a required credential is absent.
	ErrNotConfigured = errors.New("assistant not configured")

	// ErrUpstream signifies that the hosted language-model service failed.
	ErrUpstream = errors.New("upstream service failed")

	// ErrInternal signifies an unexpected error on the server.
	ErrInternal = errors.New("internal server error")
)

// UserFacing pairs an error kind with the fixed message shown to the user.
// The cause is kept for logs only.
type UserFacing struct {
	Kind    error
	Message string
	Cause   error
}

// NewUserFacing wraps cause so that errors.Is matches both kind and cause.
func NewUserFacing(kind error, message string, cause error) error {
	return &UserFacing{Kind: kind, Message: message, Cause: cause}
}

func (e *UserFacing) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *UserFacing) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// UserMessage returns the fixed user message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var uf *UserFacing
	if errors.As(err, &uf) {
		return uf.Message, true
	}
	return "", false
}
