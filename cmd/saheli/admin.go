package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hersaheli/saheli/internal/cli"
	"github.com/hersaheli/saheli/internal/config"
	"github.com/hersaheli/saheli/internal/security"
	"github.com/spf13/cobra"
)

var resetUsername string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Replace a user's password with a temporary one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunResetPasswordCommand(resolveDBPath(), resetUsername, cmd.OutOrStdout())
	},
}

var bootstrapUsername string

var bootstrapUserCmd = &cobra.Command{
	Use:   "bootstrap-user",
	Short: "Create an account unless it already exists",
	Long:  "Creates an account from --username or ADMIN_USERNAME. The password comes from ADMIN_PASSWORD or an interactive prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := bootstrapUsername
		if username == "" {
			username = config.GetEnv("ADMIN_USERNAME", "")
		}
		return cli.RunBootstrapUserCommand(resolveDBPath(), username, os.Getenv("ADMIN_PASSWORD"), os.Stdin, cmd.OutOrStdout())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default symptom catalogue and content library",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSeedCommand(resolveDBPath(), cmd.OutOrStdout())
	},
}

var purgeTokensCmd = &cobra.Command{
	Use:   "purge-tokens",
	Short: "Delete revoked token records that have expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunPurgeTokensCommand(resolveDBPath(), time.Now().UTC(), cmd.OutOrStdout())
	},
}

var migrationsCmd = &cobra.Command{
	Use:   "migrations",
	Short: "Apply pending schema migrations and list the applied ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunMigrationStatusCommand(resolveDBPath(), cmd.OutOrStdout())
	},
}

var generateSecretCmd = &cobra.Command{
	Use:   "generate-secret",
	Short: "Print a random value for SECRET_KEY",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := security.SecretKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetUsername, "username", "", "Account username")
	_ = resetPasswordCmd.MarkFlagRequired("username")
	bootstrapUserCmd.Flags().StringVar(&bootstrapUsername, "username", "", "Account username (defaults to ADMIN_USERNAME)")

	rootCmd.AddCommand(resetPasswordCmd, bootstrapUserCmd, seedCmd, purgeTokensCmd, migrationsCmd, generateSecretCmd)
}
