package session

import "errors"

// ErrUpdateFailed is matched by every error UpdateProfile returns.
var ErrUpdateFailed = errors.New("failed to update profile")

// UpdateError carries the message to show for a failed profile update.
type UpdateError struct {
	Message string
	cause   error
}

func (e *UpdateError) Error() string        { return e.Message }
func (e *UpdateError) Is(target error) bool { return target == ErrUpdateFailed }
func (e *UpdateError) Unwrap() error        { return e.cause }
