// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync training data across devices",
	Long: `Sync training data across devices using Charm Cloud.

Your data is E2E encrypted with your SSH key before upload.
The server never sees your unencrypted training data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     fitcoach sync link

  2. On other devices, link with the same Charm account:
     fitcoach sync link

  3. Check sync status:
     fitcoach sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write operation.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.

Example:
  fitcoach sync link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Use charm CLI to link
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Your training data will now sync automatically across devices.")

		// Sync immediately after linking
		if charmStore != nil {
			if err := charmStore.Sync(); err != nil {
				color.Yellow("⚠ Initial sync failed: %v", err)
			} else {
				color.Green("✓ Initial sync complete")
			}
		}

		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local training data.
You can link again later with 'fitcoach sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Use charm CLI to unlink
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local training data is preserved.")

		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long: `Show current sync status including:
- Connection status
- Local data info`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if charmStore == nil {
			color.Yellow("Charm Cloud not connected")
			fmt.Println("\nRun 'fitcoach sync link' to connect, or check the cache setting in config.")
			return nil
		}

		fmt.Println("Server: charm.2389.dev")
		fmt.Println()

		entries, err := historySvc.List(cmd.Context())
		if err != nil {
			return err
		}
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}
		recs, err := historySvc.Records(cmd.Context())
		if err != nil {
			return err
		}

		color.Green("✓ Connected to Charm")
		fmt.Printf("  Programs: %d\n", len(programSvc.Personal()))
		fmt.Printf("  Workouts: %d\n", len(entries))
		fmt.Printf("  Records: %d\n", len(recs))

		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local data.

This is a DESTRUCTIVE operation. ALL data will be permanently deleted.
Use this to:
- Completely remove all training data
- Start completely fresh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Confirm
		fmt.Println("This will PERMANENTLY DELETE all cloud backups and local training data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe("fitcoach")
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)

		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.
Use this to:
- Fix sync conflicts
- Reset a device to cloud state
- Start fresh on a device`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if charmStore == nil {
			return fmt.Errorf("Charm Cloud not connected; nothing to restore from")
		}

		// Confirm
		fmt.Println("This will DELETE all local training data and restore from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		if err := charmStore.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")

		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}
