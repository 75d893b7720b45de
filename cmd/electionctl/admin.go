package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unilorin-sug/election/internal/service"

	"github.com/spf13/cobra"
)

func adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage election committee accounts",
	}
	cmd.AddCommand(createAdminCommand())
	cmd.AddCommand(grantRoleCommand())
	cmd.AddCommand(listRolesCommand())
	return cmd
}

func createAdminCommand() *cobra.Command {
	var input service.CreateAdminInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an election committee account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			admin, err := c.AuthService.CreateAdmin(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin #%d %s\n", admin.ID, admin.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&input.DisplayName, "display-name", "", "display name")
	cmd.Flags().StringVar(&input.Password, "password", "", "initial password")
	cmd.Flags().BoolVar(&input.IsSuper, "super", false, "grant super admin")
	return cmd
}

func grantRoleCommand() *cobra.Command {
	var (
		username string
		roles    []string
	)
	cmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Replace the roles of an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("--username is required")
			}
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			admin, err := c.AdminRepo.GetByUsername(username)
			if err != nil {
				return err
			}
			if admin == nil {
				return fmt.Errorf("admin %q not found", username)
			}
			if err := c.AuthzService.SetAdminRoles(admin.ID, roles); err != nil {
				return err
			}
			assigned, err := c.AuthzService.GetAdminRoles(admin.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", admin.Username, strings.Join(assigned, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to assign, repeatable")
	return cmd
}

func listRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List available roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			roles, err := c.AuthzService.ListRoles()
			if err != nil {
				return err
			}
			for _, role := range roles {
				fmt.Fprintln(cmd.OutOrStdout(), role)
			}
			return nil
		},
	}
}
