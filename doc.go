// SPDX-License-Identifier: MIT

// Package pgboot manages the lifecycle of an application's PostgreSQL
// database.  It creates and drops databases over an admin connection,
// runs application-defined initialization against the target, and
// resolves its configuration from flags, host-application config, and
// the environment with a fixed precedence.
//
// A companion CLI lives in the pgbootcli sub-package; the core logic is
// here.
//
// # Install
//
//	go get github.com/pgboot/pgboot@latest
//
// # Quick start
//
//	import (
//	    "context"
//
//	    "github.com/pgboot/pgboot"
//	)
//
//	func main() {
//	    app := pgboot.New(pgboot.Config{
//	        DatabaseURL: os.Getenv("DATABASE_URL"),
//	    }, nil)
//
//	    app.Setup(context.Background(), pgboot.SetupOptions{})
//	}
//
// # Configuration
//
// Use Config to pin values down:
//
//   - DatabaseURL     — connection URL of the managed database
//   - AdminDB         — maintenance database for server-level SQL (default "postgres")
//   - Template        — template database cloned on create
//   - SchemaPath      — SQL file applied by Init when no callback is set
//   - Env             — declared environment, checked against DisallowedEnvs
//   - DisallowedEnvs  — environments that refuse to run
//
// Every unset field falls back to an environment variable and then to a
// built-in default; see the Env* constants.  Flags beat config, config
// beats the environment.
//
// # Initialization callbacks
//
// An initializer's argument shape is fixed when it is registered:
//
//	InitWith(func(ctx context.Context) error)
//	InitWithApp(func(ctx context.Context, app *App) error)
//	InitWithDB(func(ctx context.Context, db *sql.DB) error)
//	InitWithAppDB(func(ctx context.Context, app *App, db *sql.DB) error)
//
// NewInitCallback accepts any of the four signatures dynamically and
// rejects everything else at registration time.
//
// # Programmatic API
//
//	New(cfg, logger)            → *App
//	(*App).Create(ctx, opts)    → error
//	(*App).Drop(ctx, opts)      → error
//	(*App).Init(ctx, opts)      → error
//	(*App).Setup(ctx, opts)     → error
//	(*App).Reset(ctx, opts)     → error
//	(*App).CheckEnv()           → error
//
// All operations are context-aware; cancel the context to abort long
// runs.  Errors are terminal: nothing is retried, and a failure between
// the create and init halves of Setup leaves a created, uninitialized
// database behind.
//
// # Errors
//
// Failures carry types worth matching on: DatabaseExistsError,
// DatabaseNotFoundError, URIError, EnvironmentError, and the sentinel
// ErrNoDatabaseURL.  Server-side SQLSTATEs for duplicate and missing
// databases map onto the same types.
//
// # CLI helper
//
// If you prefer shell commands, install the binary:
//
//	go install github.com/pgboot/pgboot/cmd/pgboot@latest
//
// See the pgbootcli package doc for flags and usage.
//
// # Versioning
//
// A semantic version string is exposed as:
//
//	var Version = "vX.Y.Z"
//
// Embed it in your own commands to surface pgboot's build version.
package pgboot
