// ABOUTME: Root Cobra command for fitcoach CLI.
// ABOUTME: Handles cache and backend client lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harperreed/fitcoach/internal/api"
	"github.com/harperreed/fitcoach/internal/config"
	"github.com/harperreed/fitcoach/internal/history"
	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/identity"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/programs"
	"github.com/harperreed/fitcoach/internal/records"
)

var (
	cfg        *config.Config
	cache      *kvcache.Cache
	charmStore *kvcache.CharmStore
	backend    *api.Client
	programSvc *programs.Service
	historySvc *history.Service
	tracker    *records.Tracker

	notify host.Notifier = host.Terminal{}
)

var rootCmd = &cobra.Command{
	Use:   "fitcoach",
	Short: "Workout tracking and coaching programs",
	Long: `Fitcoach is a CLI client for the fitness coaching marketplace.

PROGRAMS:

  $ fitcoach program list                      # Your personal programs
  $ fitcoach program add "Фулбади" \
      -e "Жим лёжа:3:8:60" -e "Скакалка:1::90" # Create a program
  $ fitcoach program catalog                   # Browse published programs
  $ fitcoach program purchases                 # Programs you bought

WORKOUTS:

  $ fitcoach workout start <program-id>   # Begin a session
  $ fitcoach workout set 1 1 62.5 8       # Record set 1 of exercise 1
  $ fitcoach workout done 1 1             # Mark it completed
  $ fitcoach workout cardio 2 1           # Run a cardio countdown
  $ fitcoach workout finish               # Log the session to history

  A started session survives between invocations; its clock only runs
  while a workout command is attached.

HISTORY AND RECORDS:

  $ fitcoach history        # Finished workouts, most recent first
  $ fitcoach records        # Personal best weight/reps per exercise

SYNC (AUTOMATIC):

  Workout data syncs across devices through Charm Cloud, E2E encrypted
  with your SSH key. Every write also lands in a local store first, so
  nothing is lost offline.

  $ fitcoach sync link      # Link device to your Charm account
  $ fitcoach sync status    # Check sync status

MCP INTEGRATION:

  Run 'fitcoach mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fitcoach": { "command": "fitcoach", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "login" {
			return nil
		}
		return initApp()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if programSvc != nil {
			programSvc.Wait()
		}
		if cache != nil {
			return cache.Close()
		}
		return nil
	},
}

// initApp loads config and wires the cache, backend client and services.
func initApp() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	local, err := kvcache.OpenBadger(filepath.Join(cfg.GetDataDir(), "cache"))
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	var cloud kvcache.Store
	if cfg.GetCache() == "charm" {
		charmStore, err = kvcache.OpenCharm()
		if err != nil {
			// Cloud storage is optional; the local store carries on alone.
			notify.Advise("Charm Cloud unavailable, running local-only: %v", err)
			charmStore = nil
		} else {
			cloud = charmStore
		}
	}
	cache = kvcache.New(cloud, local)

	if !cfg.Offline {
		id := identity.Chain{
			identity.Static(cfg.InitData),
			identity.Cached{UserID: cfg.UserID, FirstName: cfg.FirstName},
		}
		backend = api.NewClient(cfg.GetAPIBaseURL(), id)
	}

	// A typed nil pointer must not reach the interface fields; the services
	// check for interface nil to detect offline mode.
	var progBackend programs.Backend
	var histBackend history.Backend
	if backend != nil {
		progBackend = backend
		histBackend = backend
	}
	programSvc = programs.NewService(cache, progBackend, notify)
	historySvc = history.NewService(cache, histBackend)
	tracker = records.NewTracker()
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
