package pgbootcli

import (
	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

func (r *root) setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create and initialize the configured database",
		Long: `Create the configured database, then initialize it. Equivalent to
"create" followed by "init".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext()
			defer cancel()
			return r.app.Setup(ctx, pgboot.SetupOptions{
				CreateOptions: pgboot.CreateOptions{
					Template:        r.template,
					Overwrite:       r.overwrite,
					ForceDisconnect: r.forceDisconnect,
				},
				InitOptions: pgboot.InitOptions{SchemaPath: r.schemaPath},
			})
		},
	}
	r.urlFlag(cmd)
	r.adminFlag(cmd)
	cmd.Flags().StringVarP(&r.template, "template", "t", "", "template database to clone")
	cmd.Flags().BoolVarP(&r.overwrite, "overwrite", "o", false, "drop an existing database before creating")
	cmd.Flags().BoolVarP(&r.forceDisconnect, "force-disconnect", "d", false, "terminate open connections before a drop")
	cmd.Flags().StringVar(&r.schemaPath, "schema", "", "SQL file to apply when no init callback is registered")
	return cmd
}
