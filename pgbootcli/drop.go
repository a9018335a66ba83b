package pgbootcli

import (
	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

func (r *root) dropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "drop",
		SuggestFor: []string{"delete"},
		Short:      "Drop the configured database",
		Long: `Drop the configured database over an admin connection.

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
			return r.app.Drop(ctx, pgboot.DropOptions{ForceDisconnect: r.forceDisconnect})
		},
	}
	r.urlFlag(cmd)
	r.adminFlag(cmd)
	cmd.Flags().BoolVarP(&r.force, "force", "f", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&r.forceDisconnect, "force-disconnect", "d", false, "terminate open connections before the drop")
	return cmd
}
