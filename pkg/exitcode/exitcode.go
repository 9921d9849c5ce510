// Package exitcode provides the process exit statuses of data-vault
package exitcode

import "errors"

// Exit codes for the data-vault CLI. Every failure of a command, configuration
// problems included, exits with GeneralError. ConfigError is only returned
// by `config validate`, so scripts can tell a broken configuration apart.
const (
	Success      = 0
	GeneralError = 1
	ConfigError  = 2
)

// Coder is implemented by errors that carry their own exit status.
type Coder interface {
	ExitCode() int
}

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// For maps an error returned by a command to the process exit status.
func For(err error) int {
	if err == nil {
		return Success
	}
	var c Coder
	if errors.As(err, &c) {
		return c.ExitCode()
	}
	return GeneralError
}

// Error attaches an exit status to err.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) ExitCode() int {
	return e.Code
}

// WithCode wraps err so that For reports code. A nil err stays nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}
