package pgbootcli

import (
	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

func (r *root) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "init",
		SuggestFor: []string{"initialize"},
		Short:      "Initialize the configured database",
		Long: `Connect to the configured database and run the registered init
callback. Without a callback, apply the --schema SQL file (or the one
from the config); with neither, log that there is nothing to run.

The database must already exist; see "setup" for create-and-init in one
step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext()
			defer cancel()
			return r.app.Init(ctx, pgboot.InitOptions{SchemaPath: r.schemaPath})
		},
	}
	r.urlFlag(cmd)
	cmd.Flags().StringVar(&r.schemaPath, "schema", "", "SQL file to apply when no init callback is registered")
	return cmd
}
