// ABOUTME: CLI commands for identity and profile.
// ABOUTME: login stores the cached user; user shows the backend profile.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/fitcoach/internal/config"
)

var (
	loginUserID   int64
	loginName     string
	loginInitData string
	loginAPIURL   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store identity for backend requests",
	Long: `Store the identity sent with every backend request.

Inside the host environment the init-data payload is provided directly;
pass it with --init-data. Outside it, a synthetic payload is built from
the cached user ID and name.

Examples:
  fitcoach login --user-id 123456 --name "Иван"
  fitcoach login --init-data "query_id=...&user=..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if loginUserID != 0 {
			cfg.UserID = loginUserID
		}
		if loginName != "" {
			cfg.FirstName = loginName
		}
		if loginInitData != "" {
			cfg.InitData = loginInitData
		}
		if loginAPIURL != "" {
			cfg.APIBaseURL = loginAPIURL
		}

		if cfg.UserID == 0 && cfg.InitData == "" {
			return fmt.Errorf("nothing to store; pass --user-id or --init-data")
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		notify.Success("Identity saved")
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the backend profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if backend == nil {
			return fmt.Errorf("running offline; no profile available")
		}

		profile, err := backend.FetchProfile(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		if profile == nil {
			fmt.Println("No profile returned.")
			return nil
		}

		fmt.Printf("Name: %s\n", profile.DisplayName)
		fmt.Printf("ID: %d\n", profile.ID)
		if profile.Role != "" {
			fmt.Printf("Role: %s\n", profile.Role)
		}
		fmt.Printf("Balance: %.0f\n", profile.Balance)
		return nil
	},
}

func init() {
	loginCmd.Flags().Int64Var(&loginUserID, "user-id", 0, "Telegram user ID")
	loginCmd.Flags().StringVar(&loginName, "name", "", "first name for the synthetic payload")
	loginCmd.Flags().StringVar(&loginInitData, "init-data", "", "raw init-data payload")
	loginCmd.Flags().StringVar(&loginAPIURL, "api-url", "", "backend API root")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(userCmd)
}
