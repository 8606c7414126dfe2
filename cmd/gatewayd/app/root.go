// Package app provides the entry point for the gatewayd command-line
// application.
package app

import (
	"github.com/spf13/cobra"

	"github.com/oauthgw/prgateway/pkg/logger"
)

// NewRootCmd creates the root command for the gatewayd CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "gatewayd",
		DisableAutoGenTag: true,
		Short:             "gatewayd is an OAuth 2.0 Protected Resource gateway for a tool-protocol API",
		Long: `gatewayd sits between an AI client (which performs the OAuth dance with an
upstream provider) and that provider's REST API. It publishes RFC 9728
discovery metadata, validates bearer tokens against the upstream
introspection endpoint with a bounded time-windowed cache, and forwards
authenticated calls to tool handlers without ever observing the client's
OAuth flow.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				logger.Errorf("error displaying help: %v", err)
			}
		},
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Initialize(logger.UnstructuredLogsFromEnv())
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.SilenceUsage = true

	return rootCmd
}
