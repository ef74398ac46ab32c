package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glkernel-cli",
		Short: "General ledger kernel CLI",
		Long: `Runs the ledger derivation and control kernel offline over JSON files,
queries a running glkernel API, or migrates its read model database.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the glkernel API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		deriveCmd(),
		reclassCmd(),
		allocateCmd(),
		accrueCmd(),
		trialBalanceCmd(),
		coaCmd(),
		periodCmd(),
		numberingCmd(),
		dimensionsCmd(),
		migrateCmd(),
		remoteCmd(),
	)

	return rootCmd
}
