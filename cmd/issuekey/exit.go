package main

import "errors"

// Exit codes beyond the hook outcomes
const (
	exitConfig = 2
)

// exitError carries an explicit process exit code. A nil err means the
// problem was already reported and main should print nothing.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// exitCodeOf extracts an exit code from any error, defaulting to 1
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) && ee.code > 0 {
		return ee.code
	}
	return 1
}
