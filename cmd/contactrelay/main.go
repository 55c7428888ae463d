package main

import (
	"fmt"
	"os"

	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contactrelay",
		Short: "Contact form relay",
		Long: `contactrelay accepts a website contact form post, sanitizes it and relays
it as one plain-text message to a fixed recipient, then redirects the sender to a
confirmation page. All settings come from the environment or a .env file.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.GetGlobalLogger().Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
