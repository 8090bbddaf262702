package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm GOAL",
	Short: "Remove a goal and its completion history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a, args[0])
	if err != nil {
		return err
	}

	if err := a.Progress.Delete(g.ID); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", g.Title)
	return nil
}
