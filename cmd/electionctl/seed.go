package main

import (
	"fmt"
	"time"

	"github.com/unilorin-sug/election/internal/seed"

	"github.com/spf13/cobra"
)

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo election with verified students and candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			result, err := seed.Run(c, time.Now())
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "demo data already present")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded election #%d (%d students, %d candidates)\n",
				result.ElectionID, result.Students, result.Candidates)
			return nil
		},
	}
}
