package pgboot

import (
	"errors"
	"fmt"
)

// ErrNoDatabaseURL is returned when no target database URL could be
// resolved from flags, configuration, or the environment.
var ErrNoDatabaseURL = errors.New(
	"database URL is not set: pass --url, set DatabaseURL in the config, or export " +
		EnvDatabaseURL + " (or " + EnvDatabaseURLFallback + ")")

// URIError reports a connection URL that failed validation.
type URIError struct {
	URI    string
	Reason string
}

func (e *URIError) Error() string {
	return fmt.Sprintf("invalid database URI %q: %s", e.URI, e.Reason)
}

// DatabaseExistsError is returned by create operations when the target
// database already exists.
type DatabaseExistsError struct {
	Name string
}

func (e *DatabaseExistsError) Error() string {
	return fmt.Sprintf("database %q already exists", e.Name)
}

// DatabaseNotFoundError is returned by drop and init operations when the
// target database does not exist.
type DatabaseNotFoundError struct {
	Name string
}

func (e *DatabaseNotFoundError) Error() string {
	return fmt.Sprintf("database %q does not exist", e.Name)
}

// EnvironmentError is returned when the configured environment is on the
// disallow list. Nothing has been executed when it is returned.
type EnvironmentError struct {
	Env string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("refusing to run: environment %q is disallowed", e.Env)
}
