package pgbootcli

import (
	"github.com/spf13/cobra"

	"github.com/pgboot/pgboot"
)

func (r *root) createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the configured database",
		Long: `Create the configured database over an admin connection.

Fails when the database already exists; pass --overwrite to drop and
recreate it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext()
			defer cancel()
			return r.app.Create(ctx, pgboot.CreateOptions{
				Template:        r.template,
				Overwrite:       r.overwrite,
				ForceDisconnect: r.forceDisconnect,
			})
		},
	}
	r.urlFlag(cmd)
	r.adminFlag(cmd)
	cmd.Flags().StringVarP(&r.template, "template", "t", "", "template database to clone")
	cmd.Flags().BoolVarP(&r.overwrite, "overwrite", "o", false, "drop an existing database before creating")
	cmd.Flags().BoolVarP(&r.forceDisconnect, "force-disconnect", "d", false, "terminate open connections before a drop")
	return cmd
}
