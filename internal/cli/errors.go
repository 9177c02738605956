package cli

import (
	"errors"
	"fmt"
)

var (
	// ErrRootMissing reports a traversal root that does not exist.
	ErrRootMissing = errors.New("root directory does not exist")
	// ErrRootNotDirectory reports a traversal root that is not a directory.
	ErrRootNotDirectory = errors.New("root path is not a directory")
	// ErrInvalidValue reports a numeric option outside its accepted range.
	ErrInvalidValue = errors.New("invalid value")
)

// ConfigError reports an invalid command-line or configuration value.
// It is raised before any output is written.
type ConfigError struct {
	Setting string
	Value   string
	Err     error
}

func (configError *ConfigError) Error() string {
	if configError.Value == "" {
		return fmt.Sprintf("%s: %v", configError.Setting, configError.Err)
	}
	return fmt.Sprintf("%s %q: %v", configError.Setting, configError.Value, configError.Err)
}

func (configError *ConfigError) Unwrap() error {
	return configError.Err
}
