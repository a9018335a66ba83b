package pgbootcli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "pgboot.yaml"

// opTimeout bounds every command.
const opTimeout = 10 * time.Minute

// root carries flag storage and the resolved App for one command tree.
type root struct {
	app  *pgboot.App
	base pgboot.Config

	standalone bool
	cfgFile    string

	url             string
	adminDB         string
	template        string
	schemaPath      string
	force           bool
	forceDisconnect bool
	overwrite       bool
}

// New returns a "db" command group wired to cfg, for embedding in a host
// application's CLI. cfg usually carries the host's DatabaseURL and OnInit
// callback; flags and the environment fill in the rest at run time.
func New(cfg pgboot.Config) *cobra.Command {
	r := &root{base: cfg}
	cmd := &cobra.Command{
		Use:               "db",
		Short:             "Manage the application's PostgreSQL database",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	r.addCommands(cmd)
	return cmd
}

// NewStandalone returns the root command used by the pgboot binary. It
// resolves configuration from flags, an optional YAML config file, and
// the environment.
func NewStandalone() *cobra.Command {
	r := &root{standalone: true}
	cmd := &cobra.Command{
		Use:   "pgboot",
		Short: "Create, drop, and initialize PostgreSQL databases",
		Long: `pgboot manages the lifecycle of an application's PostgreSQL database:
it creates and drops databases over an admin connection and runs schema
initialization against the target.

The connection URL resolves from --url, then the config file, then the
PGBOOT_DATABASE_URL and DATABASE_URL environment variables.`,
		Version:           pgboot.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	cmd.PersistentFlags().StringVar(&r.cfgFile, "config", "", `YAML config file (default "pgboot.yaml" when present)`)
	cmd.CompletionOptions.DisableDefaultCmd = true
	r.addCommands(cmd)
	return cmd
}

// Execute runs the standalone CLI and returns a process exit code.
func Execute() int {
	if err := NewStandalone().Execute(); err != nil {
		echoError("Error: %v", err)
		return 1
	}
	return 0
}

func (r *root) addCommands(cmd *cobra.Command) {
	cmd.AddCommand(r.createCmd(), r.dropCmd(), r.initCmd(), r.setupCmd(), r.resetCmd())
}

// setup builds the App for the invoked command and runs the environment
// guard before any command body executes. Flags win over the config
// source, which wins over the environment.
func (r *root) setup(cmd *cobra.Command, args []string) error {
	base := r.base
	if r.standalone {
		cfg, err := r.loadConfigFile()
		if err != nil {
			return err
		}
		base = cfg
	}
	if r.url != "" {
		base.DatabaseURL = r.url
	}
	if r.adminDB != "" {
		base.AdminDB = r.adminDB
	}
	r.app = pgboot.New(base, cliLogger{})
	return r.app.CheckEnv()
}

// loadConfigFile reads --config, or the default file when it exists.
func (r *root) loadConfigFile() (pgboot.Config, error) {
	path := r.cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return pgboot.Config{}, nil
		}
		path = defaultConfigFile
	}
	return pgboot.LoadConfig(path)
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (r *root) urlFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.url, "url", "u", "", "PostgreSQL connection URL, overrides config and environment")
}

func (r *root) adminFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.adminDB, "admin-dbname", "a", "", `maintenance database for server-level statements (default "postgres")`)
}
