/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beastgym/apiserver/config"
	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/internal/db"
	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
)

var (
	createAdminName     string
	createAdminEmail    string
	createAdminPassword string
)

// createAdminCmd bootstraps the first dashboard login.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a super admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if createAdminName == "" || createAdminEmail == "" || createAdminPassword == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}

		cfg := config.LoadConfig()
		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = dbConn.Close()
		}()

		accounts := services.NewAccountService(store.NewAccountRepository(dbConn))
		account, err := accounts.Create(cmd.Context(), createAdminName, createAdminEmail, auth.RoleSuperAdmin, createAdminPassword)
		if err != nil {
			return fmt.Errorf("create admin failed: %w", err)
		}

		fmt.Printf("created super admin %s (id %d)\n", account.Email, account.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&createAdminName, "name", "", "Display name for the admin")
	createAdminCmd.Flags().StringVar(&createAdminEmail, "email", "", "Login email for the admin")
	createAdminCmd.Flags().StringVar(&createAdminPassword, "password", "", "Plaintext password, hashed before storage")
}
