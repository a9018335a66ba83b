package pgbootcli

import (
	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

func (r *root) resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "reset",
		SuggestFor: []string{"overwrite"},
		Short:      "Drop, recreate, and reinitialize the configured database",
		Long: `Drop the configured database, create it fresh, and initialize it.
The drop half tolerates a missing database, so reset converges from any
starting state.

Asks for confirmation by retyping the database name; --force skips the
prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !r.force {
				target, err := r.app.TargetURI()
				if err != nil {
					return err
				}
				if err := confirmDrop(cmd.InOrStdin(), target.Database); err != nil {
					return err
				}
			}
			ctx, cancel := opContext()
			defer cancel()
			return r.app.Reset(ctx, pgboot.ResetOptions{
				CreateOptions: pgboot.CreateOptions{
					Template:        r.template,
					ForceDisconnect: r.forceDisconnect,
				},
				InitOptions: pgboot.InitOptions{SchemaPath: r.schemaPath},
			})
		},
	}
	r.urlFlag(cmd)
	r.adminFlag(cmd)
	cmd.Flags().StringVarP(&r.template, "template", "t", "", "template database to clone")
	cmd.Flags().BoolVarP(&r.force, "force", "f", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&r.forceDisconnect, "force-disconnect", "d", false, "terminate open connections before the drop")
	cmd.Flags().StringVar(&r.schemaPath, "schema", "", "SQL file to apply when no init callback is registered")
	return cmd
}
