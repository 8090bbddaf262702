package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(failCmd)
}

var failCmd = &cobra.Command{
	Use:   "fail GOAL",
	Short: "Mark a goal as failed, taking the penalty now",
	Args:  cobra.ExactArgs(1),
	RunE:  runFail,
}

func runFail(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a, args[0])
	if err != nil {
		return err
	}

	rec, err := a.Penalties.MarkFailed(g.ID, a.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Marked %s as failed: -%d coins, -%d stat points\n",
		rec.GoalTitle, rec.CoinPenalty, rec.StatPenalty)
	return nil
}
