// ABOUTME: CLI commands for running a workout session.
// ABOUTME: Start, record sets, run cardio countdowns, finish to history.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/session"
)

var workoutUndo bool

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Run a workout session",
	Long: `Run a workout session from one of your programs.

A session persists between invocations: start it, record sets as you
train, then finish. The session clock only runs while a workout command
is attached, so a backgrounded session does not inflate the duration.

WORKFLOW:

  1. Start:             fitcoach workout start prog_abc123
  2. Record a set:      fitcoach workout set 1 1 62.5 8
  3. Mark it done:      fitcoach workout done 1 1
  4. Cardio countdown:  fitcoach workout cardio 2 1
  5. Finish:            fitcoach workout finish

Exercise and set numbers are 1-based, in program order. Completed sets
feed total volume and personal records; incomplete ones are ignored.`,
}

// newSessionManager wires a manager over the shared services and resumes
// any persisted session.
func newSessionManager(ctx context.Context) (*session.Manager, bool, error) {
	if err := historySvc.LoadTracker(ctx, tracker); err != nil {
		return nil, false, fmt.Errorf("failed to load records: %w", err)
	}

	var b session.Backend
	if backend != nil {
		b = backend
	}
	machine := session.NewMachine(nil, host.Terminal{})
	mgr := session.NewManager(machine, tracker, cache, b, notify)

	resumed, err := mgr.ResumePersisted()
	if err != nil {
		return nil, false, fmt.Errorf("failed to resume session: %w", err)
	}
	return mgr, resumed, nil
}

// activeSession resumes the persisted session or fails with a hint.
func activeSession(ctx context.Context) (*session.Manager, error) {
	mgr, resumed, err := newSessionManager(ctx)
	if err != nil {
		return nil, err
	}
	if !resumed {
		return nil, fmt.Errorf("no workout in progress; start one with 'fitcoach workout start'")
	}
	return mgr, nil
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <program-id>",
	Short: "Start a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, resumed, err := newSessionManager(cmd.Context())
		if err != nil {
			return err
		}
		if resumed {
			return fmt.Errorf("a workout is already in progress; finish or cancel it first")
		}

		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}
		p, ok := programSvc.Get(args[0])
		if !ok {
			return fmt.Errorf("program not found: %s", args[0])
		}

		if err := mgr.Start(p); err != nil {
			return err
		}

		notify.Success("Started %q", p.Title)
		printSession(mgr.Machine())
		return nil
	},
}

var workoutStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		m := mgr.Machine()
		fmt.Printf("Workout: %s\n", m.Program().Title)
		fmt.Printf("Elapsed: %s\n\n", formatDuration(m.Elapsed()))
		printSession(m)
		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <exercise> <set> <weight> [reps]",
	Short: "Record weight and reps for a set",
	Long: `Record the weight and reps for one set.

For cardio exercises the weight slot is the countdown seconds and reps
are not used.

Examples:
  fitcoach workout set 1 1 62.5 8
  fitcoach workout set 2 1 90`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		exIdx, setIdx, err := parseIndexes(args[0], args[1])
		if err != nil {
			return err
		}

		if err := mgr.Machine().UpdateSet(exIdx, setIdx, session.FieldWeight, args[2]); err != nil {
			return err
		}
		if len(args) > 3 {
			if err := mgr.Machine().UpdateSet(exIdx, setIdx, session.FieldReps, args[3]); err != nil {
				return err
			}
		}
		return mgr.Persist()
	},
}

var workoutDoneCmd = &cobra.Command{
	Use:   "done <exercise> <set>",
	Short: "Mark a set completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		exIdx, setIdx, err := parseIndexes(args[0], args[1])
		if err != nil {
			return err
		}

		if err := mgr.Machine().SetCompleted(exIdx, setIdx, !workoutUndo); err != nil {
			return err
		}
		return mgr.Persist()
	},
}

var workoutAddSetCmd = &cobra.Command{
	Use:   "add-set <exercise>",
	Short: "Add an extra set to an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		exIdx, _, err := parseIndexes(args[0], "1")
		if err != nil {
			return err
		}

		if err := mgr.Machine().AddSet(exIdx); err != nil {
			return err
		}
		return mgr.Persist()
	},
}

var workoutCardioCmd = &cobra.Command{
	Use:   "cardio <exercise> <set>",
	Short: "Run a cardio countdown",
	Long: `Run the countdown for a cardio set and wait for it to finish.

The countdown starts from the seconds in the set's weight slot. When it
reaches zero the set is marked completed, the display resets to the
starting seconds, and the terminal bell rings. Interrupting the command
stops the countdown without completing the set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		exIdx, setIdx, err := parseIndexes(args[0], args[1])
		if err != nil {
			return err
		}

		m := mgr.Machine()
		// The user is watching now, so the session clock runs.
		if err := m.Restore(); err != nil {
			return err
		}

		running, err := m.ToggleCardio(exIdx, setIdx)
		if err != nil {
			return err
		}
		if !running {
			return fmt.Errorf("countdown did not start")
		}

		runner := session.NewRunner(m)
		runner.Start()
		defer runner.Stop()

		faint := color.New(color.Faint)
		for {
			var remaining string
			var done bool
			_ = runner.Do(func(m *session.Machine) error {
				if m.Cardio() == nil {
					done = true
					return nil
				}
				remaining = m.Sets(exIdx)[setIdx].Weight
				return nil
			})
			if done {
				break
			}
			faint.Printf("\r%s sec remaining ", remaining)
			time.Sleep(200 * time.Millisecond)
		}
		fmt.Println()

		var persistErr error
		_ = runner.Do(func(m *session.Machine) error {
			_ = m.Minimize()
			persistErr = mgr.Persist()
			return nil
		})
		if persistErr != nil {
			return persistErr
		}

		notify.Success("Countdown complete")
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the session and log it",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}

		summary, err := mgr.Finish(cmd.Context())
		if err != nil {
			return err
		}

		notify.Success("Finished %q", summary.Title)
		fmt.Printf("  Duration: %s\n", formatDuration(summary.Duration))
		if summary.CardioOnly {
			fmt.Printf("  Cardio: %s\n", formatDuration(summary.CardioSeconds))
		} else {
			fmt.Printf("  Volume: %.1f kg\n", summary.Volume)
			fmt.Printf("  Sets: %d\n", summary.TotalSets)
			if summary.CardioSeconds > 0 {
				fmt.Printf("  Cardio: %s\n", formatDuration(summary.CardioSeconds))
			}
		}
		return nil
	},
}

var workoutCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Abandon the session without logging it",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := activeSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := mgr.Discard(); err != nil {
			return err
		}
		fmt.Println("Workout canceled.")
		return nil
	},
}

// printSession renders the exercise/set grid.
func printSession(m *session.Machine) {
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	for i, ex := range m.Program().Exercises {
		cardio := models.DefaultCatalog.IsCardio(ex.Name)
		fmt.Printf("%d. %s\n", i+1, ex.Name)
		for j, s := range m.Sets(i) {
			mark := faint.Sprint("·")
			if s.Completed {
				mark = green.Sprint("✓")
			}
			if cardio {
				fmt.Printf("  %s set %d: %s sec\n", mark, j+1, orDash(s.Weight))
				continue
			}
			fmt.Printf("  %s set %d: %s kg x %s  %s\n",
				mark, j+1,
				orDash(s.Weight), orDash(s.Reps),
				faint.Sprintf("(last: %s x %s)", orDash(s.PrevWeight), orDash(s.PrevReps)))
		}
	}
}

func parseIndexes(exArg, setArg string) (int, int, error) {
	exIdx := models.ParseReps(exArg)
	setIdx := models.ParseReps(setArg)
	if exIdx < 1 || setIdx < 1 {
		return 0, 0, fmt.Errorf("exercise and set numbers are 1-based")
	}
	return exIdx - 1, setIdx - 1, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func init() {
	workoutDoneCmd.Flags().BoolVar(&workoutUndo, "undo", false, "unmark instead of mark")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutStatusCmd)
	workoutCmd.AddCommand(workoutSetCmd)
	workoutCmd.AddCommand(workoutDoneCmd)
	workoutCmd.AddCommand(workoutAddSetCmd)
	workoutCmd.AddCommand(workoutCardioCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutCancelCmd)
	rootCmd.AddCommand(workoutCmd)
}
