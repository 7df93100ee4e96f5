package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "financo-cli",
		Short: "Financo CLI tool",
		Long:  `A command line interface for interacting with the Financo API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Financo API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("FINANCO_TOKEN"), "Bearer token")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the current-month dashboard",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/reports/dashboard")
		},
	}
	rootCmd.AddCommand(dashboardCmd)

	balanceCmd := &cobra.Command{
		Use:   "balance [user-id]",
		Short: "Show available salary balance",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/salaries/balance"
			if len(args) > 0 {
				path += "?user_id=" + args[0]
			}
			getAndPrint(path)
		},
	}
	rootCmd.AddCommand(balanceCmd)

	fundCmd := &cobra.Command{
		Use:   "fund",
		Short: "Fund operations",
	}

	fundSummaryCmd := &cobra.Command{
		Use:   "summary <type>",
		Short: "Show a fund's summary (emergencia, viagem, carro, mesada)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/funds/" + args[0] + "/")
		},
	}

	fundHistoryCmd := &cobra.Command{
		Use:   "history <type>",
		Short: "Show a fund's entries and expenses",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/funds/" + args[0] + "/history")
		},
	}

	fundCmd.AddCommand(fundSummaryCmd, fundHistoryCmd)
	rootCmd.AddCommand(fundCmd)

	annualCmd := &cobra.Command{
		Use:   "annual <year>",
		Short: "Show the annual report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/reports/annual/" + args[0])
		},
	}
	rootCmd.AddCommand(annualCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/ready")
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getAndPrint(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, joinURL(baseURL, path), nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		// Not an object (e.g. an array); print raw.
		fmt.Println(string(body))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

// joinURL joins a base URL and a path without doubling slashes.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
