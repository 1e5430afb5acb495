package main

import (
	"fmt"
	"os"

	"github.com/hersaheli/saheli/internal/config"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:          "saheli",
	Short:        "saheli serves the women's health tracking API",
	Long:         "saheli runs the cycle, pregnancy and postpartum tracking API and its maintenance commands.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (defaults to DB_PATH)")
}

func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.ResolveDBPath()
}
