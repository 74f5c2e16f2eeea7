package kafka

import "errors"

// PermanentError marks an event that will never succeed and must be skipped
// instead of retried.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent returns a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether the error is marked permanent.
func IsPermanent(err error) bool {
	var p PermanentError
	return errors.As(err, &p)
}
