package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborlaw/lawsite"
)

func newCreateUserCommand() *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account that can sign in to the admin panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			cfg, err := lawsite.LoadConfig()
			if err != nil {
				return err
			}
			store, err := lawsite.NewStore(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			u, err := lawsite.RegisterUser(cmd.Context(), store, email, password, lawsite.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", u.Role, u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", string(lawsite.RoleAdmin), "role: admin or user")
	return cmd
}
