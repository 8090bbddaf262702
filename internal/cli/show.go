package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show GOAL",
	Short: "Show a goal's details and completion history",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", g.Title)
	if g.Description != "" {
		fmt.Printf("  %s\n", g.Description)
	}
	fmt.Printf("  ID:         %s\n", g.ID)
	fmt.Printf("  Frequency:  %s\n", g.Frequency)
	fmt.Printf("  Type:       %s\n", g.Type)
	fmt.Printf("  Difficulty: %s\n", g.Difficulty)
	fmt.Printf("  Progress:   %s %g/%g (%.0f%%)\n",
		progressBar(g.ProgressPercent()), g.CurrentValue, g.TargetValue, g.ProgressPercent())
	fmt.Printf("  Active:     %v   Repeating: %v\n", g.Active, g.Repeating)
	fmt.Printf("  Created:    %s\n", g.CreatedAt.Format("2006-01-02 15:04"))

	if len(g.Completions) > 0 {
		fmt.Printf("\nCompletions (%d):\n", len(g.Completions))
		for _, c := range g.Completions {
			fmt.Printf("  %s  +%d coins\n", c.CompletedAt.Format("2006-01-02 15:04"), c.CoinsEarned)
		}
	}
	return nil
}
