package app

// LocalizedError carries a user-facing message in the run's language next to
// the underlying cause.
type LocalizedError struct {
	Message string
	Err     error
}

func (e *LocalizedError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *LocalizedError) Unwrap() error { return e.Err }

func localize(message string, err error) error {
	return &LocalizedError{Message: message, Err: err}
}
