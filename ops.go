package pgboot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes surfaced by CREATE DATABASE and DROP DATABASE.
const (
	codeDuplicateDatabase  = "42P04"
	codeInvalidCatalogName = "3D000"
)

// Queries issued over the admin connection. Database names that end up
// inside a statement go through pgx.Identifier; only these two bind
// parameters.
const (
	existsQuery = `SELECT EXISTS (SELECT datname FROM pg_catalog.pg_database WHERE datname = $1)`

	terminateQuery = `SELECT pg_terminate_backend(pg_stat_activity.pid)
FROM pg_stat_activity
WHERE pg_stat_activity.datname = $1`
)

// DatabaseExists reports whether a database with the given name exists on
// the server db is connected to.
func DatabaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, existsQuery, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check database %q: %w", name, err)
	}
	return exists, nil
}

// TerminateBackends force-disconnects every session open against the named
// database and returns how many were terminated. CREATE and DROP DATABASE
// both refuse to run while sessions are open.
func TerminateBackends(ctx context.Context, db *sql.DB, name string) (int64, error) {
	rows, err := db.QueryContext(ctx, terminateQuery, name)
	if err != nil {
		return 0, fmt.Errorf("terminate backends of %q: %w", name, err)
	}
	defer rows.Close()
	var n int64
	for rows.Next() {
		var terminated bool
		if err := rows.Scan(&terminated); err != nil {
			return n, err
		}
		if terminated {
			n++
		}
	}
	return n, rows.Err()
}

// CreateDatabase creates the named database over an admin connection. An
// empty template uses the cluster default. The existing-database case is
// checked up front so it comes back as a DatabaseExistsError rather than a
// raw server error; the server-side duplicate error maps to the same type
// in case another session wins the race.
func CreateDatabase(ctx context.Context, db *sql.DB, name, template string) error {
	exists, err := DatabaseExists(ctx, db, name)
	if err != nil {
		return err
	}
	if exists {
		return &DatabaseExistsError{Name: name}
	}
	stmt := "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
	if template != "" {
		stmt += " TEMPLATE " + pgx.Identifier{template}.Sanitize()
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		if typed := typedPgError(err, name); typed != nil {
			return typed
		}
		return fmt.Errorf("create database %q: %w", name, err)
	}
	return nil
}

// DropDatabase drops the named database over an admin connection. A missing
// database comes back as a DatabaseNotFoundError.
func DropDatabase(ctx context.Context, db *sql.DB, name string) error {
	exists, err := DatabaseExists(ctx, db, name)
	if err != nil {
		return err
	}
	if !exists {
		return &DatabaseNotFoundError{Name: name}
	}
	stmt := "DROP DATABASE " + pgx.Identifier{name}.Sanitize()
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		if typed := typedPgError(err, name); typed != nil {
			return typed
		}
		return fmt.Errorf("drop database %q: %w", name, err)
	}
	return nil
}

// ApplySchema executes the SQL file at path against db in one round trip.
func ApplySchema(ctx context.Context, db *sql.DB, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("execute %s: %w", path, err)
	}
	return nil
}

// typedPgError converts the two SQLSTATEs this package cares about into
// their typed equivalents, or returns nil for anything else.
func typedPgError(err error, name string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case codeDuplicateDatabase:
		return &DatabaseExistsError{Name: name}
	case codeInvalidCatalogName:
		return &DatabaseNotFoundError{Name: name}
	}
	return nil
}
