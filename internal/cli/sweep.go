package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(sweepCmd)
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the scheduler: reset repeating goals, penalize missed ones",
	Long: `Run the period scheduler once. Repeating goals whose period has
elapsed are reset to zero progress, and active daily goals that went
untouched are penalized. Suitable for cron:

  0 0 * * * ascend sweep`,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	reset, err := a.Schedule.Tick(a.Now())
	if err != nil {
		return err
	}
	penalized, err := a.Schedule.RolloverSweep(a.Now())
	if err != nil {
		return err
	}

	for _, g := range reset {
		fmt.Printf("Reset %s for a new %s period\n", g.Title, g.Frequency)
	}
	for _, p := range penalized {
		fmt.Printf("Penalized %s (%s): -%d coins\n", p.GoalTitle, p.Reason, p.CoinPenalty)
	}
	if len(reset) == 0 && len(penalized) == 0 {
		fmt.Println("Nothing to do.")
	}
	return nil
}
