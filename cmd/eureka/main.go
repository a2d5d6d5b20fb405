// Package main is the eureka terminal client.
//
// Usage:
//
//	eureka [--config file] [--server url] [--theme dark|light]
//	eureka login
//	eureka logout
//	eureka prefs list|reset
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	server     string
	theme      string
}

func main() {
	var g globals

	rootCmd := &cobra.Command{
		Use:   "eureka",
		Short: "Terminal client for the Eureka notes server",
		Long: `Eureka is a keyboard-driven terminal client for a Eureka server.

It renders the server's pages, submits entries, and shows the server's
feedback as toast notifications.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(&g)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default ~/.eureka/config.json)")
	rootCmd.PersistentFlags().StringVar(&g.server, "server", "", "server base URL")
	rootCmd.PersistentFlags().StringVar(&g.theme, "theme", "", "start with this theme (dark or light)")

	rootCmd.AddCommand(
		loginCmd(&g),
		logoutCmd(&g),
		prefsCmd(&g),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
