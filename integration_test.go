package pgboot

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Live-server tests. They need an admin-capable PostgreSQL and are gated on
// PGBOOT_TEST_DSN, e.g.
//
//	PGBOOT_TEST_DSN="postgres://postgres@localhost:5432/postgres?sslmode=disable" go test ./...
//
// Each test works against its own disposable database and cleans up after
// itself.

func testBaseURI(t *testing.T) URI {
	t.Helper()
	dsn := os.Getenv("PGBOOT_TEST_DSN")
	if dsn == "" {
		t.Skip("Set PGBOOT_TEST_DSN to run live PostgreSQL tests")
	}
	u, err := ParseURI(dsn)
	require.NoError(t, err)
	return u
}

// testApp builds an App whose target is dbname on the test server. The DSN's
// own database doubles as the admin database.
func testApp(t *testing.T, dbname string, cfg Config) (*App, *testLogger) {
	t.Helper()
	base := testBaseURI(t)
	target := base
	target.Database = dbname
	cfg.DatabaseURL = target.String()
	if cfg.AdminDB == "" {
		cfg.AdminDB = base.Database
	}
	log := &testLogger{}
	app := New(cfg, log)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = app.Drop(ctx, DropOptions{IfExists: true, ForceDisconnect: true})
	})
	return app, log
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	return ctx
}

func assertTableExists(t *testing.T, app *App, table string) {
	t.Helper()
	target, err := app.TargetURI()
	require.NoError(t, err)
	db, err := sql.Open("pgx", target.String())
	require.NoError(t, err)
	defer db.Close()

	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`
	require.NoError(t, db.QueryRow(q, table).Scan(&exists))
	assert.True(t, exists, "table %s should exist", table)
}

func TestIntegrationCreateDrop(t *testing.T) {
	app, _ := testApp(t, "pgboot_it_lifecycle", Config{})
	ctx := testCtx(t)

	require.NoError(t, app.Create(ctx, CreateOptions{}))

	err := app.Create(ctx, CreateOptions{})
	var existsErr *DatabaseExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, "pgboot_it_lifecycle", existsErr.Name)

	require.NoError(t, app.Drop(ctx, DropOptions{}))

	err = app.Drop(ctx, DropOptions{})
	var missingErr *DatabaseNotFoundError
	require.ErrorAs(t, err, &missingErr)
}

func TestIntegrationDropIfExists(t *testing.T) {
	app, log := testApp(t, "pgboot_it_ifexists", Config{})
	ctx := testCtx(t)

	require.NoError(t, app.Drop(ctx, DropOptions{IfExists: true}))
	assert.Contains(t, log.joined(), "skipping drop")
}

func TestIntegrationOverwrite(t *testing.T) {
	app, log := testApp(t, "pgboot_it_overwrite", Config{})
	ctx := testCtx(t)

	require.NoError(t, app.Create(ctx, CreateOptions{}))
	require.NoError(t, app.Create(ctx, CreateOptions{Overwrite: true}))
	assert.Contains(t, log.joined(), "was deleted")
}

func TestIntegrationSetupAppliesSchema(t *testing.T) {
	app, log := testApp(t, "pgboot_it_schema", Config{SchemaPath: "testdata/schema.sql"})
	ctx := testCtx(t)

	require.NoError(t, app.Setup(ctx, SetupOptions{}))
	assert.Contains(t, log.joined(), "was created")
	assert.Contains(t, log.joined(), "was initialized")
	assertTableExists(t, app, "widgets")
}

func TestIntegrationResetConverges(t *testing.T) {
	app, log := testApp(t, "pgboot_it_reset", Config{SchemaPath: "testdata/schema.sql"})
	ctx := testCtx(t)

	// From a missing database.
	require.NoError(t, app.Reset(ctx, ResetOptions{}))
	assert.Contains(t, log.joined(), "skipping drop")
	assertTableExists(t, app, "widgets")

	// And from an initialized one.
	require.NoError(t, app.Reset(ctx, ResetOptions{}))
	assertTableExists(t, app, "widgets")
}

func TestIntegrationInitCallback(t *testing.T) {
	cfg := Config{OnInit: InitWithDB(func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, "CREATE TABLE gadgets (id INT PRIMARY KEY)")
		return err
	})}
	app, _ := testApp(t, "pgboot_it_callback", cfg)
	ctx := testCtx(t)

	require.NoError(t, app.Setup(ctx, SetupOptions{}))
	assertTableExists(t, app, "gadgets")
}

func TestIntegrationInitNothingToRun(t *testing.T) {
	app, log := testApp(t, "pgboot_it_noop", Config{})
	ctx := testCtx(t)

	require.NoError(t, app.Create(ctx, CreateOptions{}))
	require.NoError(t, app.Init(ctx, InitOptions{}))
	assert.Contains(t, log.joined(), "nothing to initialize")
}

func TestIntegrationInitMissingDatabase(t *testing.T) {
	app, _ := testApp(t, "pgboot_it_absent", Config{})
	ctx := testCtx(t)

	err := app.Init(ctx, InitOptions{})
	var missingErr *DatabaseNotFoundError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "pgboot_it_absent", missingErr.Name)
}

func TestIntegrationTemplate(t *testing.T) {
	src, _ := testApp(t, "pgboot_it_tpl_src", Config{SchemaPath: "testdata/schema.sql"})
	ctx := testCtx(t)
	require.NoError(t, src.Setup(ctx, SetupOptions{}))

	// CREATE DATABASE ... TEMPLATE refuses while sessions are open against
	// the source, so make sure none linger.
	base := testBaseURI(t)
	admin, err := sql.Open("pgx", base.String())
	require.NoError(t, err)
	defer admin.Close()
	_, err = TerminateBackends(ctx, admin, "pgboot_it_tpl_src")
	require.NoError(t, err)

	clone, _ := testApp(t, "pgboot_it_tpl_clone", Config{})
	require.NoError(t, clone.Create(ctx, CreateOptions{Template: "pgboot_it_tpl_src"}))
	assertTableExists(t, clone, "widgets")
}

func TestIntegrationForceDisconnect(t *testing.T) {
	app, log := testApp(t, "pgboot_it_disconnect", Config{})
	ctx := testCtx(t)

	require.NoError(t, app.Create(ctx, CreateOptions{}))

	// Hold a session open against the target so a plain drop would fail.
	target, err := app.TargetURI()
	require.NoError(t, err)
	held, err := sql.Open("pgx", target.String())
	require.NoError(t, err)
	defer held.Close()
	require.NoError(t, held.PingContext(ctx))

	require.NoError(t, app.Drop(ctx, DropOptions{ForceDisconnect: true}))
	assert.Contains(t, log.joined(), "terminated")
}

func TestIntegrationDatabaseExists(t *testing.T) {
	base := testBaseURI(t)
	ctx := testCtx(t)

	admin, err := sql.Open("pgx", base.String())
	require.NoError(t, err)
	defer admin.Close()

	exists, err := DatabaseExists(ctx, admin, base.Database)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = DatabaseExists(ctx, admin, "pgboot_surely_absent")
	require.NoError(t, err)
	assert.False(t, exists)
}
