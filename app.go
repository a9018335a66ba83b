package pgboot

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Logger receives progress and warning output. *log.Logger satisfies it,
// as does anything else with a Printf method.
type Logger interface {
	Printf(format string, v ...any)
}

// App executes database lifecycle operations for one configured target.
// Every method is synchronous and opens and closes its own connections
// within the call; nothing is retried.
type App struct {
	cfg Config
	log Logger
}

// New builds an App from cfg, resolving unset fields from the environment
// and built-in defaults. A nil logger falls back to stderr.
func New(cfg Config, logger Logger) *App {
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &App{cfg: cfg.Resolve(), log: logger}
}

// Config returns the resolved configuration.
func (a *App) Config() Config { return a.cfg }

// TargetURI parses the resolved database URL.
func (a *App) TargetURI() (URI, error) { return a.cfg.TargetURI() }

// CheckEnv refuses to proceed when the configured environment is on the
// disallow list. A blank environment never matches.
func (a *App) CheckEnv() error {
	if a.cfg.Env == "" {
		return nil
	}
	for _, disallowed := range a.cfg.DisallowedEnvs {
		if a.cfg.Env == disallowed {
			return &EnvironmentError{Env: a.cfg.Env}
		}
	}
	return nil
}

// CreateOptions control App.Create.
type CreateOptions struct {
	// Template names an existing database to clone instead of the cluster
	// default. Empty falls back to Config.Template.
	Template string

	// Overwrite drops an existing database before creating it fresh.
	Overwrite bool

	// ForceDisconnect terminates open sessions before a drop. Only
	// meaningful together with Overwrite.
	ForceDisconnect bool
}

// DropOptions control App.Drop.
type DropOptions struct {
	// ForceDisconnect terminates open sessions before the drop.
	ForceDisconnect bool

	// IfExists logs and carries on when the database is missing instead of
	// returning a DatabaseNotFoundError.
	IfExists bool
}

// InitOptions control App.Init.
type InitOptions struct {
	// SchemaPath overrides Config.SchemaPath for this call.
	SchemaPath string
}

// SetupOptions bundle the create and init halves of App.Setup.
type SetupOptions struct {
	CreateOptions
	InitOptions
}

// ResetOptions bundle the create and init halves of App.Reset. The drop
// step is implied, so CreateOptions.Overwrite is ignored here.
type ResetOptions struct {
	CreateOptions
	InitOptions
}

// Create creates the target database over an admin connection.
func (a *App) Create(ctx context.Context, opts CreateOptions) error {
	db, target, err := a.openAdmin()
	if err != nil {
		return err
	}
	defer db.Close()
	return a.create(ctx, db, target.Database, opts)
}

// Drop drops the target database over an admin connection.
func (a *App) Drop(ctx context.Context, opts DropOptions) error {
	db, target, err := a.openAdmin()
	if err != nil {
		return err
	}
	defer db.Close()
	return a.drop(ctx, db, target.Database, opts)
}

// Init connects to the target database and runs the registered callback.
// Without a callback it applies the configured schema file, and with
// neither it logs that there is nothing to run. The target must already
// exist.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	target, err := a.TargetURI()
	if err != nil {
		return err
	}
	db, err := sql.Open("pgx", target.String())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	return a.init(ctx, db, target.Database, opts)
}

// Setup creates the target database and then initializes it.
func (a *App) Setup(ctx context.Context, opts SetupOptions) error {
	if err := a.Create(ctx, opts.CreateOptions); err != nil {
		return err
	}
	return a.Init(ctx, opts.InitOptions)
}

// Reset drops, recreates, and reinitializes the target database. The drop
// tolerates a missing database, so Reset converges from any starting state.
func (a *App) Reset(ctx context.Context, opts ResetOptions) error {
	if err := a.Drop(ctx, DropOptions{ForceDisconnect: opts.ForceDisconnect, IfExists: true}); err != nil {
		return err
	}
	if err := a.Create(ctx, CreateOptions{Template: opts.Template}); err != nil {
		return err
	}
	return a.Init(ctx, opts.InitOptions)
}

func (a *App) create(ctx context.Context, db *sql.DB, name string, opts CreateOptions) error {
	if opts.Overwrite {
		drop := DropOptions{ForceDisconnect: opts.ForceDisconnect, IfExists: true}
		if err := a.drop(ctx, db, name, drop); err != nil {
			return err
		}
	}
	template := firstNonEmpty(opts.Template, a.cfg.Template)
	if err := CreateDatabase(ctx, db, name, template); err != nil {
		return err
	}
	a.log.Printf("database %q was created", name)
	return nil
}

func (a *App) drop(ctx context.Context, db *sql.DB, name string, opts DropOptions) error {
	if opts.IfExists {
		exists, err := DatabaseExists(ctx, db, name)
		if err != nil {
			return err
		}
		if !exists {
			a.log.Printf("database %q does not exist, skipping drop", name)
			return nil
		}
	}
	if opts.ForceDisconnect {
		n, err := TerminateBackends(ctx, db, name)
		if err != nil {
			return err
		}
		if n > 0 {
			a.log.Printf("terminated %d open connection(s) to %q", n, name)
		}
	}
	if err := DropDatabase(ctx, db, name); err != nil {
		return err
	}
	a.log.Printf("database %q was deleted", name)
	return nil
}

func (a *App) init(ctx context.Context, db *sql.DB, name string, opts InitOptions) error {
	// Surface a missing database as its typed error before any user code
	// runs. The driver reports it at connect time as InvalidCatalogName.
	if err := db.PingContext(ctx); err != nil {
		if typed := typedPgError(err, name); typed != nil {
			return typed
		}
		return fmt.Errorf("connect to %q: %w", name, err)
	}

	schema := firstNonEmpty(opts.SchemaPath, a.cfg.SchemaPath)
	switch {
	case a.cfg.OnInit != nil:
		if err := a.cfg.OnInit.Run(ctx, a, db); err != nil {
			return fmt.Errorf("init callback: %w", err)
		}
	case schema != "":
		if err := ApplySchema(ctx, db, schema); err != nil {
			return err
		}
	default:
		a.log.Printf("no init callback or schema configured, nothing to initialize")
		return nil
	}
	a.log.Printf("database %q was initialized", name)
	return nil
}

// openAdmin opens the admin connection derived from the target URI. The
// target is returned alongside so callers know which database the admin
// statements are about.
func (a *App) openAdmin() (*sql.DB, URI, error) {
	target, err := a.TargetURI()
	if err != nil {
		return nil, URI{}, err
	}
	admin := target.AdminURI(a.adminName())
	db, err := sql.Open("pgx", admin.String())
	if err != nil {
		return nil, URI{}, fmt.Errorf("open admin database: %w", err)
	}
	return db, target, nil
}

// adminName returns the configured admin database name. A leading "/" is
// a common copy-paste slip from URL paths; strip it with a warning rather
// than failing the connection.
func (a *App) adminName() string {
	name := a.cfg.AdminDB
	if strings.HasPrefix(name, "/") {
		a.log.Printf("stripping leading %q from admin database name %q", "/", name)
		name = strings.TrimLeft(name, "/")
	}
	if name == "" {
		return DefaultAdminDB
	}
	return name
}
