package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConfigFile means no configuration file was found on the search path.
	ErrNoConfigFile = errors.New("no configuration file found")

	// ErrUnknownStorageRoot means a storage root name is not configured.
	ErrUnknownStorageRoot = errors.New("unknown storage root")

	// ErrStorageRootRequired means several storage roots are configured and none was chosen.
	ErrStorageRootRequired = errors.New("storage root must be specified when more than one is configured")
)

// Error reports a configuration file that could not be loaded or is invalid.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration %s: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
