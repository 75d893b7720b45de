package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sweepCodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-codes",
		Short: "Delete expired email verification codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			removed, err := c.VerificationService.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired codes\n", removed)
			return nil
		},
	}
}
