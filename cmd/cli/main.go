package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerbank-cli",
		Short: "LedgerBank CLI tool",
		Long:  `A command line interface for interacting with the LedgerBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LedgerBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(openAccountCmd())
	rootCmd.AddCommand(creditCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openAccountCmd() *cobra.Command {
	var (
		name        string
		email       string
		nationalID  string
		accountType string
		branch      string
	)

	cmd := &cobra.Command{
		Use:   "open-account",
		Short: "Open a new bank account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts", map[string]string{
				"name":         name,
				"email":        email,
				"national_id":  nationalID,
				"account_type": accountType,
				"branch":       branch,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account holder name")
	cmd.Flags().StringVar(&email, "email", "", "Account holder email")
	cmd.Flags().StringVar(&nationalID, "national-id", "", "12-digit national ID")
	cmd.Flags().StringVar(&accountType, "type", "Savings", "Account type (Savings or Current)")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("national-id")
	cmd.MarkFlagRequired("branch")

	return cmd
}

func creditCmd() *cobra.Command {
	var (
		accountNumber string
		name          string
		pin           string
		amount        string
	)

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Credit an amount to an account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/ledger/credit", map[string]string{
				"account_number": accountNumber,
				"name":           name,
				"pin":            pin,
				"amount":         amount,
			})
		},
	}

	addAmountFlags(cmd, &accountNumber, &name, &pin, &amount)

	return cmd
}

func withdrawCmd() *cobra.Command {
	var (
		accountNumber string
		name          string
		pin           string
		amount        string
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw an amount from an account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/ledger/withdraw", map[string]string{
				"account_number": accountNumber,
				"name":           name,
				"pin":            pin,
				"amount":         amount,
			})
		},
	}

	addAmountFlags(cmd, &accountNumber, &name, &pin, &amount)

	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-number>",
		Short: "Get the current balance for an account number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/balance/" + args[0])
		},
	}
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <account-id>",
		Short: "Export an account's transaction log as CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			exportCSV(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func addAmountFlags(cmd *cobra.Command, accountNumber, name, pin, amount *string) {
	cmd.Flags().StringVar(accountNumber, "account", "", "16-digit account number")
	cmd.Flags().StringVar(name, "name", "", "Account holder name")
	cmd.Flags().StringVar(pin, "pin", "", "4-digit PIN")
	cmd.Flags().StringVar(amount, "amount", "", "Amount")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("pin")
	cmd.MarkFlagRequired("amount")
}

func postJSON(path string, payload map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func exportCSV(accountID, output string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + accountID + "/transactions/export")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Export FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	dst := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Printf("Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		fmt.Printf("Failed to write export: %v\n", err)
		os.Exit(1)
	}

	if output != "" {
		fmt.Printf("Exported %s records to %s\n", resp.Header.Get("X-Record-Count"), output)
	}
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
