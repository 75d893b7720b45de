package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables and builtin roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 容器初始化时会同步预置角色
			if _, err := openContainer(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}
