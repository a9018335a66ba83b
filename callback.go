package pgboot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitCallback runs application-defined initialization against the target
// database. The argument shape is fixed when the callback is constructed;
// build one with InitWith, InitWithApp, InitWithDB, InitWithAppDB, or, when
// the signature is only known at run time, NewInitCallback.
type InitCallback struct {
	run func(ctx context.Context, app *App, db *sql.DB) error
}

// InitWith registers an initializer that needs no arguments beyond the
// context.
func InitWith(fn func(ctx context.Context) error) *InitCallback {
	return &InitCallback{run: func(ctx context.Context, _ *App, _ *sql.DB) error {
		return fn(ctx)
	}}
}

// InitWithApp registers an initializer that receives the running App.
func InitWithApp(fn func(ctx context.Context, app *App) error) *InitCallback {
	return &InitCallback{run: func(ctx context.Context, app *App, _ *sql.DB) error {
		return fn(ctx, app)
	}}
}

// InitWithDB registers an initializer that receives an open connection to
// the target database.
func InitWithDB(fn func(ctx context.Context, db *sql.DB) error) *InitCallback {
	return &InitCallback{run: func(ctx context.Context, _ *App, db *sql.DB) error {
		return fn(ctx, db)
	}}
}

// InitWithAppDB registers an initializer that receives both the running App
// and an open connection to the target database.
func InitWithAppDB(fn func(ctx context.Context, app *App, db *sql.DB) error) *InitCallback {
	return &InitCallback{run: fn}
}

// NewInitCallback accepts any of the four supported initializer signatures
// and rejects everything else. Prefer the typed constructors when the
// signature is known at compile time.
func NewInitCallback(fn any) (*InitCallback, error) {
	switch f := fn.(type) {
	case func(context.Context) error:
		return InitWith(f), nil
	case func(context.Context, *App) error:
		return InitWithApp(f), nil
	case func(context.Context, *sql.DB) error:
		return InitWithDB(f), nil
	case func(context.Context, *App, *sql.DB) error:
		return InitWithAppDB(f), nil
	case nil:
		return nil, errors.New("init callback is nil")
	default:
		return nil, fmt.Errorf("unsupported init callback signature %T", fn)
	}
}

// Run invokes the callback. app and db match what the variant asked for;
// unused arguments are dropped.
func (cb *InitCallback) Run(ctx context.Context, app *App, db *sql.DB) error {
	return cb.run(ctx, app, db)
}
