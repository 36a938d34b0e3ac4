// ABOUTME: CLI commands for managing workout programs.
// ABOUTME: Personal CRUD, catalog browsing, publishing, and purchases.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fitcoach/internal/models"
)

var (
	programExercises []string
	programCategory  string
	programPrice     float64
)

var programCmd = &cobra.Command{
	Use:     "program",
	Aliases: []string{"p"},
	Short:   "Manage workout programs",
	Long: `Manage personal workout programs and browse the published catalog.

Personal programs are yours alone: edits apply immediately and sync to
the server in the background. Published programs live in the shared
catalog and every change waits for server confirmation.

COMMANDS:

  list        List your personal programs
  show        Show a program's exercise plan
  add         Create a personal program
  delete      Delete a program
  catalog     Browse the published catalog
  publish     Publish a personal program to the catalog
  purchases   List programs you have bought
  exercises   Show the stock exercise catalog

Exercises are given as "Name:sets:reps:weight", e.g. "Жим лёжа:3:8:60".
For cardio exercises the weight slot holds seconds: "Скакалка:1::90".`,
}

var programListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List personal programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}

		progs := programSvc.Personal()
		if len(progs) == 0 {
			fmt.Println("No programs yet. Create one with 'fitcoach program add'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range progs {
			fmt.Printf("%s %s (%d exercises)\n",
				faint.Sprint(p.ID),
				p.Title,
				len(p.Exercises))
		}
		return nil
	},
}

var programShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a program's exercise plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}

		p, ok := programSvc.Get(args[0])
		if !ok {
			return fmt.Errorf("program not found: %s", args[0])
		}

		fmt.Printf("Program: %s\n", p.Title)
		fmt.Printf("ID: %s\n", p.ID)
		if p.Category != "" {
			fmt.Printf("Category: %s\n", p.Category)
		}
		fmt.Println("\nExercises:")
		for i, ex := range p.Exercises {
			detail := fmt.Sprintf("%d sets", ex.Sets)
			if ex.Reps != "" {
				detail += fmt.Sprintf(" x %s reps", ex.Reps)
			}
			if ex.Weight != "" {
				if models.DefaultCatalog.IsCardio(ex.Name) {
					detail += fmt.Sprintf(", %s sec", ex.Weight)
				} else {
					detail += fmt.Sprintf(" @ %s kg", ex.Weight)
				}
			}
			fmt.Printf("  %d. %s (%s)\n", i+1, ex.Name, detail)
		}
		return nil
	},
}

var programAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a personal program",
	Long: `Create a personal program from exercise specs.

Examples:
  fitcoach program add "Фулбади" -e "Жим лёжа:3:8:60" -e "Присед:3:5:100"
  fitcoach program add "Кардио" -e "Скакалка:1::90" -e "Бег:1::300"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(programExercises) == 0 {
			return fmt.Errorf("at least one --exercise is required")
		}

		p := models.NewProgram(args[0])
		for _, spec := range programExercises {
			ex, err := parseExerciseSpec(spec)
			if err != nil {
				return err
			}
			p.Exercises = append(p.Exercises, ex)
		}

		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}
		if err := programSvc.SavePersonal(cmd.Context(), *p); err != nil {
			return fmt.Errorf("failed to save program: %w", err)
		}

		notify.Success("Created %q", p.Title)
		fmt.Printf("  ID: %s\n", p.ID)
		return nil
	},
}

var programDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}

		p, ok := programSvc.Get(args[0])
		if !ok {
			// Not in the personal list; treat as a published delete, which
			// only proceeds once the server confirms ownership.
			if err := programSvc.DeletePublished(cmd.Context(), args[0]); err != nil {
				return err
			}
			notify.Success("Deleted published program %s", args[0])
			return nil
		}

		if err := programSvc.Delete(cmd.Context(), p); err != nil {
			return err
		}
		notify.Success("Deleted %q", p.Title)
		return nil
	},
}

var programCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the published catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		progs, err := programSvc.Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		if len(progs) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range progs {
			price := "free"
			if p.Price > 0 {
				price = fmt.Sprintf("%.0f", p.Price)
			}
			fmt.Printf("%s %s by %s, %s\n",
				faint.Sprint(p.ID),
				p.Title,
				p.Author,
				price)
		}
		return nil
	},
}

var programPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a personal program to the catalog",
	Long: `Publish a personal program to the shared catalog.

The program stays in your personal list; the catalog gets its own copy
once the server accepts it.

Example:
  fitcoach program publish prog_abc123 --category "Сила" --price 500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := programSvc.Load(cmd.Context()); err != nil {
			return err
		}

		p, ok := programSvc.Get(args[0])
		if !ok {
			return fmt.Errorf("program not found: %s", args[0])
		}

		published := p
		published.ID = "" // the server assigns the catalog ID
		published.Category = programCategory
		published.Price = programPrice
		return programSvc.SavePublished(cmd.Context(), published)
	},
}

var programPurchasesCmd = &cobra.Command{
	Use:   "purchases",
	Short: "List programs you have bought",
	RunE: func(cmd *cobra.Command, args []string) error {
		progs, err := programSvc.Purchases(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load purchases: %w", err)
		}
		if len(progs) == 0 {
			fmt.Println("No purchases yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range progs {
			fmt.Printf("%s %s by %s\n", faint.Sprint(p.ID), p.Title, p.Author)
		}
		return nil
	},
}

var programExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Show the stock exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		for category, names := range models.DefaultCatalog {
			color.New(color.Bold).Println(category)
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
		}
		return nil
	},
}

// parseExerciseSpec parses "Name:sets:reps:weight" with trailing parts
// optional.
func parseExerciseSpec(spec string) (models.ExerciseSpec, error) {
	parts := strings.Split(spec, ":")
	if parts[0] == "" {
		return models.ExerciseSpec{}, fmt.Errorf("exercise spec needs a name: %q", spec)
	}

	ex := models.ExerciseSpec{Name: parts[0], Sets: 3}
	if len(parts) > 1 && parts[1] != "" {
		sets, err := strconv.Atoi(parts[1])
		if err != nil {
			return models.ExerciseSpec{}, fmt.Errorf("invalid set count in %q", spec)
		}
		ex.Sets = sets
	}
	if len(parts) > 2 {
		ex.Reps = parts[2]
	}
	if len(parts) > 3 {
		ex.Weight = parts[3]
	}
	return ex, nil
}

func init() {
	programAddCmd.Flags().StringArrayVarP(&programExercises, "exercise", "e", nil, "exercise spec Name:sets:reps:weight (repeatable)")

	programPublishCmd.Flags().StringVar(&programCategory, "category", "", "catalog category")
	programPublishCmd.Flags().Float64Var(&programPrice, "price", 0, "price in stars, 0 for free")

	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programShowCmd)
	programCmd.AddCommand(programAddCmd)
	programCmd.AddCommand(programDeleteCmd)
	programCmd.AddCommand(programCatalogCmd)
	programCmd.AddCommand(programPublishCmd)
	programCmd.AddCommand(programPurchasesCmd)
	programCmd.AddCommand(programExercisesCmd)
	rootCmd.AddCommand(programCmd)
}
