// ABOUTME: CLI commands for workout history and personal records.
// ABOUTME: Reads the cache-first history surface.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List finished workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := historySvc.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No workouts logged yet.")
			return nil
		}
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			line := fmt.Sprintf("%s %s %s",
				faint.Sprint(e.Date.Local().Format("2006-01-02 15:04")),
				padRight(e.ProgramTitle, 24),
				formatDuration(e.Duration))
			if e.Volume > 0 {
				line += fmt.Sprintf("  %.0f kg", e.Volume)
			}
			if e.CardioSeconds > 0 {
				line += fmt.Sprintf("  cardio %s", formatDuration(e.CardioSeconds))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"r"},
	Short:   "Show personal records",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := historySvc.Records(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No records yet.")
			return nil
		}

		names := make([]string, 0, len(recs))
		for name := range recs {
			names = append(names, name)
		}
		sort.Strings(names)

		faint := color.New(color.Faint)
		for _, name := range names {
			r := recs[name]
			fmt.Printf("%s %.1f kg x %d %s\n",
				padRight(name, 28),
				r.Weight,
				r.Reps,
				faint.Sprint(r.Date.Local().Format("2006-01-02")))
		}
		return nil
	},
}

// padRight pads s with spaces to at least n characters.
func padRight(s string, n int) string {
	for len([]rune(s)) < n {
		s += " "
	}
	return s
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recordsCmd)
}
