package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func remoteCmd() *cobra.Command {
	remote := &cobra.Command{
		Use:   "remote",
		Short: "Query a running glkernel API",
	}

	var asOf string
	trialBalance := &cobra.Command{
		Use:   "trial-balance LEDGER_ID",
		Short: "Fetch the trial balance of a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/ledgers/" + url.PathEscape(args[0]) + "/trial-balance"
			if asOf != "" {
				path += "?asOf=" + url.QueryEscape(asOf)
			}
			return getAndPrint(cmd, path)
		},
	}
	trialBalance.Flags().StringVar(&asOf, "as-of", "", "YYYY-MM-DD cutoff")

	periods := &cobra.Command{
		Use:   "periods LEDGER_ID",
		Short: "List the posting periods of a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint(cmd, "/api/v1/ledgers/"+url.PathEscape(args[0])+"/periods")
		},
	}

	remote.AddCommand(trialBalance, periods)
	return remote
}

func getAndPrint(cmd *cobra.Command, path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return printJSON(cmd, result)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
